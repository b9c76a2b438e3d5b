/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import "strings"

// parseExpr parses one jetro expression into its Filter chain. It is
// used both for the top-level public Parse entry point and recursively
// for nested pick/function sub-expressions, mirroring the teacher's
// path.go (newPath is called recursively for bracket-filter sub-paths)
// and original_source/src/parser.rs (parse() is called recursively for
// PickFilterInner::Subpath).
func parseExpr(expr string) ([]Filter, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, emptyQueryErr()
	}

	l := lex("jetro", expr)
	var filters []Filter

	root := l.nextLexeme()
	switch root.typ {
	case lexemeError:
		return nil, parseErr(-1, "%s", root.val)
	case lexemeRoot:
		filters = append(filters, Filter{Kind: FilterRoot})
	default:
		return nil, parseErr(-1, "expression must start with '>' or '<'")
	}

	for {
		lx := l.nextLexeme()
		switch lx.typ {
		case lexemeEOF:
			return filters, nil

		case lexemeError:
			return nil, parseErr(-1, "%s", lx.val)

		case lexemeChild:
			filters = append(filters, Filter{Kind: FilterChild, ChildName: lx.val})

		case lexemeAnyChild:
			filters = append(filters, Filter{Kind: FilterAnyChild})

		case lexemeDescendantSingle:
			filters = append(filters, Filter{
				Kind:           FilterDescendantChild,
				DescendantKind: DescendantSingle,
				DescendantName: lx.val,
			})

		case lexemeDescendantPair:
			name, lit, err := parseDescendantPair(lx.val)
			if err != nil {
				return nil, err
			}
			filters = append(filters, Filter{
				Kind:              FilterDescendantChild,
				DescendantKind:    DescendantPair,
				DescendantName:    name,
				DescendantLiteral: lit,
			})

		case lexemeArraySubscript:
			f, err := parseArraySubscript(lx.val)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)

		case lexemeGroupedChild:
			names, err := parseGroupedChild(lx.val)
			if err != nil {
				return nil, err
			}
			filters = append(filters, Filter{Kind: FilterGroupedChild, GroupNames: names})

		case lexemePick:
			items, err := parsePickItems(lx.val)
			if err != nil {
				return nil, err
			}
			filters = append(filters, Filter{Kind: FilterPick, PickItems: items})

		case lexemeFilterCall:
			tree, err := parsePredicateTree(lx.val)
			if err != nil {
				return nil, err
			}
			filters = append(filters, Filter{Kind: FilterMultiFilter, Tree: tree})

		case lexemeFuncName:
			f, err := parseFunctionFilter(l, lx.val)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f...)

		default:
			return nil, parseErr(-1, "unexpected token %v", lx)
		}
	}
}

// parseFunctionFilter consumes the lexemeFuncArgs that must follow a
// lexemeFuncName, along with an optional trailing "-> 'alias'" or
// "->* 'alias'", and returns the Function filter (plus, for the deref
// form, the derived Pick filter that lifts the aliased result back into
// scope — spec.md §3's "->*" behavior).
func parseFunctionFilter(l *lexer, name string) ([]Filter, error) {
	argsLx := l.nextLexeme()
	if argsLx.typ != lexemeFuncArgs {
		return nil, parseErr(-1, "expected arguments after function name %q", name)
	}
	args, err := parseFuncArgs(argsLx.val)
	if err != nil {
		return nil, err
	}
	spec := &FuncSpec{Name: name, Args: args}
	fn := Filter{Kind: FilterFunction, Func: spec}

	peeked := l.nextLexeme()
	switch peeked.typ {
	case lexemeArrow, lexemeArrowDeref:
		aliasLx := l.nextLexeme()
		if aliasLx.typ != lexemeAliasLiteral {
			return nil, parseErr(-1, "expected quoted alias after '->'")
		}
		alias := unquote(aliasLx.val)
		spec.Alias = alias
		spec.HasAlias = true
		if peeked.typ == lexemeArrowDeref {
			spec.Deref = true
			derefPick := Filter{
				Kind: FilterPick,
				PickItems: []PickItem{
					{Kind: PickKeyedLiteral, Key: alias, Alias: alias},
				},
			}
			return []Filter{fn, derefPick}, nil
		}
		return []Filter{fn}, nil

	default:
		// Not an arrow: push it back for the outer loop to consume.
		l.pending = &peeked
		return []Filter{fn}, nil
	}
}
