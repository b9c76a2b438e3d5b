/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// jetroweb is a small demo HTTP server, re-rooted from the teacher's
// web/main.go: same single-handler form-post shape, but the form takes
// a JSON document and a jetro expression instead of a YAML document and
// a JSONPath.
package main

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitghi/jetro"
)

func main() {
	tmpl := template.New("template")
	tmpl, err := tmpl.Parse(`<style type="text/css">
.tg  {border-collapse:collapse;border-spacing:0;}
.tg td{border-color:black;border-style:solid;border-width:1px;font-family:Arial, sans-serif;font-size:14px;
  overflow:hidden;padding:10px 5px;word-break:normal;}
.tg th{border-color:black;border-style:solid;border-width:1px;font-family:Arial, sans-serif;font-size:14px;
  font-weight:normal;overflow:hidden;padding:10px 5px;word-break:normal;}
.tg .tg-zv4m{border-color:#ffffff;text-align:left;vertical-align:top}
textarea, pre, input {font-family:Consolas,monospace; font-size:14px}
h1, body, label {font-family: Lato,proxima-nova,Helvetica Neue,Arial,sans-serif}
textarea, input {
	box-sizing: border-box;
	border: 1px solid;
	background-color: #f8f8f8;
	resize: none;
  }
</style>
<h1>jetro evaluator</h1>
<table class="tg">
<thead>
  <tr valign="top">
	<th class="tg-zv4m">
<form method="POST">
<label>JSON document</label>:<br />
<pre>
<textarea name="JSON document" cols="80" rows="30" placeholder="JSON...">{{ .Doc }}</textarea>
</pre><br /><br />
<label>jetro expression</label>:<br />
<pre>
<input type="text" size="80" name="jetro expression" placeholder="jetro expression..." value="{{ .Expr }}"><br />
<input type="submit" value="Evaluate">
</pre>
</form>

	</th>
	<th class="tg-zv4m">
	   &nbsp;&nbsp;&nbsp;&nbsp;&nbsp;
	   &nbsp;&nbsp;&nbsp;&nbsp;&nbsp;
	</th>
	<th class="tg-zv4m">
	<label>Output:</label><br /><br />
{{if .DocError}}
	<br />{{ .DocError }}<br />
{{end}}
{{if .ExprError}}
    <br />Invalid jetro expression: {{ .ExprError }}<br />
{{end}}
<pre>
{{ .Output }}<br />
</pre>
	</th>
  </tr>
</thead>
</table>
`)
	if err != nil {
		log.Fatal(err)
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		type output struct {
			Doc       string
			DocError  error
			Expr      string
			ExprError error
			Success   bool
			Output    string
		}

		if r.Method != http.MethodPost {
			if e := tmpl.Execute(w, nil); e != nil {
				respondWithError(w, e)
			}
			return
		}

		d := r.FormValue("JSON document")
		op := output{Doc: d}

		problem := false

		doc, err := jetro.FromJSON([]byte(d))
		if err != nil {
			problem = true
			op.DocError = err
		}

		e := r.FormValue("jetro expression")
		op.Expr = e
		filters, err := jetro.Parse(e)
		if err != nil {
			problem = true
			op.ExprError = err
		}

		if problem {
			if e := tmpl.Execute(w, op); e != nil {
				respondWithError(w, e)
			}
			return
		}

		results, err := jetro.CollectFilters(doc, filters)
		if err != nil {
			op.ExprError = err
			if e := tmpl.Execute(w, op); e != nil {
				respondWithError(w, e)
			}
			return
		}

		out := make([]string, 0, results.Len())
		for i := 0; i < results.Len(); i++ {
			v := results.Raw(i)
			b, err := encode(v)
			if err != nil {
				respondWithError(w, err)
				return
			}
			out = append(out, b)
		}

		op.Success = true
		op.Output = strings.Join(out, "---\n")
		if e := tmpl.Execute(w, op); e != nil {
			respondWithError(w, e)
		}
	})

	if e := http.ListenAndServe(":8080", nil); e != nil {
		log.Fatal(e)
	}
}

// encode renders a *jetro.Value with gopkg.in/yaml.v3, the teacher's own
// approach (web/main.go's encode(a *yaml.Node)), retargeted at jetro's
// value type via Value.ToInterface, whose plain Go value is handed to
// a yaml.Encoder.
func encode(v *jetro.Value) (string, error) {
	var buf bytes.Buffer
	e := yaml.NewEncoder(&buf)
	defer e.Close()
	e.SetIndent(2)

	if err := e.Encode(v.ToInterface()); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func respondWithError(w http.ResponseWriter, err error) {
	log.Println(err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
