/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import "strings"

// parseFuncArgs parses the body of "#name(arg, arg, ...)". Each
// argument is a quoted string, a nested sub-expression (starting with
// '>' or '<'), or a map statement ("x: x.a.b"), grounded in
// original_source/src/func.rs's Callable argument shapes.
func parseFuncArgs(body string) ([]FuncArg, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}
	rawArgs := splitTopLevel(body, ',')
	args := make([]FuncArg, 0, len(rawArgs))
	for _, raw := range rawArgs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, newError(ParseErr, -1, "empty function argument")
		}
		arg, err := parseFuncArg(raw)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func parseFuncArg(raw string) (FuncArg, error) {
	switch {
	case isQuoted(raw):
		return FuncArg{Kind: ArgString, Str: unquote(raw)}, nil

	case strings.HasPrefix(raw, ">") || strings.HasPrefix(raw, "<"):
		sub, err := parseExpr(raw)
		if err != nil {
			return FuncArg{}, err
		}
		return FuncArg{Kind: ArgSubExpr, SubExpr: sub}, nil

	default:
		stmt, err := parseMapStmt(raw)
		if err != nil {
			return FuncArg{}, err
		}
		return FuncArg{Kind: ArgMapStmt, MapStmt: stmt}, nil
	}
}

// parseMapStmt parses "argName: argName.field1.field2[()]" — the body
// of a #map(...) argument (spec.md §6 example
// "#map(x: x.name)"). argName binds each element passed to the map
// callable; the dot-separated remainder is a child-access chain
// relative to that binding, with an optional trailing "()" marking the
// last segment as a method call rather than a field access.
func parseMapStmt(raw string) (*MapStmt, error) {
	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return nil, newError(ParseErr, -1, "malformed map statement %q", raw)
	}
	argName := strings.TrimSpace(raw[:colon])
	chain := strings.TrimSpace(raw[colon+1:])
	if argName == "" || chain == "" {
		return nil, newError(ParseErr, -1, "malformed map statement %q", raw)
	}

	segments := strings.Split(chain, ".")
	if len(segments) == 0 || strings.TrimSpace(segments[0]) != argName {
		return nil, newError(ParseErr, -1, "map statement %q must start with its bound name", raw)
	}

	isMethodCall := false
	methodName := ""
	body := make([]Filter, 0, len(segments)-1)
	for i, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		last := i == len(segments)-2
		if last && strings.HasSuffix(seg, "()") {
			seg = strings.TrimSuffix(seg, "()")
			isMethodCall = true
		}
		if seg == "" {
			return nil, newError(ParseErr, -1, "malformed map statement %q", raw)
		}
		if last && isMethodCall {
			methodName = seg
			continue
		}
		body = append(body, Filter{Kind: FilterChild, ChildName: seg})
	}

	return &MapStmt{ArgName: argName, Body: body, IsMethodCall: isMethodCall, MethodName: methodName}, nil
}
