/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import "strings"

// parsePickItems parses the body of "#pick(item, item, ...)". Each item
// is one of:
//
//	'key'                 PickLiteral
//	'key' as 'alias'      PickKeyedLiteral
//	>/expr or </expr       PickSubExpr
//	>/expr as 'alias'      PickKeyedSubExpr
//
// grounded in original_source/src/context.rs's PickFilterInner enum
// (Literal / KeyedLiteral / Subpath / KeyedSubpath), which jetro's
// PickItemKind mirrors directly.
func parsePickItems(body string) ([]PickItem, error) {
	rawItems := splitTopLevel(body, ',')
	items := make([]PickItem, 0, len(rawItems))
	for _, raw := range rawItems {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, newError(ParseErr, -1, "empty pick item")
		}
		item, err := parsePickItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parsePickItem(raw string) (PickItem, error) {
	exprPart, alias, hasAlias, err := splitAsSuffix(raw)
	if err != nil {
		return PickItem{}, err
	}
	exprPart = strings.TrimSpace(exprPart)

	if strings.HasPrefix(exprPart, ">") || strings.HasPrefix(exprPart, "<") {
		reverse := strings.HasPrefix(exprPart, "<")
		sub, err := parseExpr(exprPart)
		if err != nil {
			return PickItem{}, err
		}
		if hasAlias {
			return PickItem{Kind: PickKeyedSubExpr, Alias: alias, SubExpr: sub, Reverse: reverse}, nil
		}
		return PickItem{Kind: PickSubExpr, SubExpr: sub, Reverse: reverse}, nil
	}

	if !isQuoted(exprPart) {
		return PickItem{}, newError(ParseErr, -1, "pick item must be a quoted key or a sub-expression, got %q", exprPart)
	}
	key := unquote(exprPart)
	if hasAlias {
		return PickItem{Kind: PickKeyedLiteral, Key: key, Alias: alias}, nil
	}
	return PickItem{Kind: PickLiteral, Key: key}, nil
}

// splitAsSuffix looks for a top-level " as 'alias'" suffix (outside
// quotes and nested parens) and splits it off.
func splitAsSuffix(s string) (exprPart, alias string, hasAlias bool, err error) {
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			if c == '\'' {
				inString = false
			}
			continue
		case c == '\'':
			inString = true
			continue
		case c == '(' || c == '[':
			depth++
			continue
		case c == ')' || c == ']':
			depth--
			continue
		}
		if depth == 0 && c == ' ' && strings.HasPrefix(s[i:], " as '") {
			aliasStart := i + len(" as ")
			end := strings.IndexByte(s[aliasStart+1:], '\'')
			if end < 0 {
				return "", "", false, newError(ParseErr, -1, "unterminated alias in %q", s)
			}
			aliasLit := s[aliasStart : aliasStart+1+end+1]
			return s[:i], unquote(aliasLit), true, nil
		}
	}
	return s, "", false, nil
}
