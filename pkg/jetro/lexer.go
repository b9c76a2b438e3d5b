/*
 * Copyright 2024 jetro Authors
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package jetro

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// This lexer follows the same approach as the teacher's lexer.go, based
// on Rob Pike's talk "Lexical Scanning in Go"
// (https://talks.golang.org/2011/lex.slide#1): a stateFn walks the input
// one rune at a time and emits lexemes over a channel. Where the
// teacher's bracket-filter body is captured as a raw lexeme run and
// handed to a second, independent parser (filter_parser.go), jetro's
// #pick/#filter/#name bodies are captured as balanced, quote-aware raw
// text and handed to dedicated sub-parsers (parser_pick.go,
// literal.go's parsePredicateTree, parser_func.go) — the same "capture now, parse
// later" split, just operating on text instead of a sub-lexeme stream.

type lexeme struct {
	typ lexemeType
	val string
}

func (l lexeme) String() string {
	switch l.typ {
	case lexemeEOF:
		return "EOF"
	case lexemeError:
		return l.val
	default:
		return fmt.Sprintf("%q", l.val)
	}
}

type lexemeType int

const (
	lexemeError lexemeType = iota
	lexemeEOF
	lexemeRoot            // ">" or "<"
	lexemeChild           // identifier
	lexemeAnyChild        // "*"
	lexemeDescendantSingle // ".." name, raw name text
	lexemeDescendantPair   // "..(" 'k' = literal ")", raw inner text
	lexemeArraySubscript  // raw text inside [...]
	lexemeGroupedChild    // raw text inside (...)
	lexemePick            // raw text inside #pick(...)
	lexemeFilterCall      // raw text inside #filter(...)
	lexemeFuncName        // name of a #name(...) call
	lexemeFuncArgs        // raw text inside #name(...)
	lexemeArrow           // "->"
	lexemeArrowDeref       // "->*"
	lexemeAliasLiteral     // quoted alias following -> or ->*
)

type stateFn func(*lexer) stateFn

type lexer struct {
	name  string
	input string
	start int
	pos   int
	width int
	state stateFn
	items chan lexeme

	// pending holds one lexeme pushed back by the parser (used when the
	// parser peeks past a function call looking for an arrow and finds
	// something else instead).
	pending *lexeme
}

func lex(name, input string) *lexer {
	l := &lexer{
		name:  name,
		input: input,
		state: lexStart,
		items: make(chan lexeme, 2),
	}
	return l
}

func (l *lexer) nextLexeme() lexeme {
	if l.pending != nil {
		lx := *l.pending
		l.pending = nil
		return lx
	}
	for {
		select {
		case item := <-l.items:
			return item
		default:
			if l.state == nil {
				return lexeme{typ: lexemeEOF}
			}
			l.state = l.state(l)
		}
	}
}

const eof rune = -1

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	return r
}

func (l *lexer) peek() rune {
	if l.pos >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) hasPrefix(p string) bool {
	return strings.HasPrefix(l.input[l.pos:], p)
}

func (l *lexer) empty() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) skipSpace() {
	for {
		r := l.next()
		if !unicode.IsSpace(r) {
			l.backup()
			break
		}
	}
	l.start = l.pos
}

func (l *lexer) value() string {
	return l.input[l.start:l.pos]
}

func (l *lexer) emit(typ lexemeType) {
	l.items <- lexeme{typ: typ, val: l.value()}
	l.start = l.pos
}

func (l *lexer) emitValue(typ lexemeType, val string) {
	l.items <- lexeme{typ: typ, val: val}
	l.start = l.pos
}

func (l *lexer) errorf(format string, args ...any) stateFn {
	l.items <- lexeme{typ: lexemeError, val: fmt.Sprintf(format, args...)}
	return nil
}

// lexStart recognises the mandatory leading root marker.
func lexStart(l *lexer) stateFn {
	if l.empty() {
		return l.errorf("empty expression")
	}
	switch l.peek() {
	case '>', '<':
		l.next()
		l.emit(lexemeRoot)
		return lexAfterSegment
	default:
		return l.errorf("expression must start with '>' or '<' at position %d", l.pos)
	}
}

// lexAfterSegment consumes the '/' separator (if any) before the next
// segment, or ends the scan.
func lexAfterSegment(l *lexer) stateFn {
	l.skipSpace()
	switch {
	case l.empty():
		l.emit(lexemeEOF)
		return nil
	case l.hasPrefix("/"):
		l.next()
		l.start = l.pos
		return lexSegment
	case l.hasPrefix("->*"):
		l.pos += len("->*")
		l.emit(lexemeArrowDeref)
		return lexAliasLiteral
	case l.hasPrefix("->"):
		l.pos += len("->")
		l.emit(lexemeArrow)
		return lexAliasLiteral
	default:
		return l.errorf("unexpected input %q at position %d", l.nextChar(), l.pos)
	}
}

func (l *lexer) nextChar() string {
	if l.empty() {
		return ""
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	_ = r
	return l.input[l.pos : l.pos+w]
}

func lexAliasLiteral(l *lexer) stateFn {
	l.skipSpace()
	if !l.hasPrefix("'") {
		return l.errorf("expected quoted alias at position %d", l.pos)
	}
	start := l.pos
	l.next()
	for {
		r := l.next()
		if r == eof {
			return l.errorf("unterminated alias literal starting at position %d", start)
		}
		if r == '\'' {
			break
		}
	}
	l.emit(lexemeAliasLiteral)
	return lexAfterSegment
}

// lexSegment dispatches on the first rune(s) of a path segment.
func lexSegment(l *lexer) stateFn {
	switch {
	case l.empty():
		return l.errorf("trailing '/' with no following segment")

	case l.hasPrefix(".."):
		return lexDescendant

	case l.hasPrefix("*"):
		l.next()
		l.emit(lexemeAnyChild)
		return lexAfterSegment

	case l.hasPrefix("["):
		return lexBracket(l, lexemeArraySubscript, '[', ']')

	case l.hasPrefix("("):
		return lexBracket(l, lexemeGroupedChild, '(', ')')

	case l.hasPrefix("#pick("):
		l.pos += len("#pick(")
		l.start = l.pos
		return lexBody(l, lexemePick)

	case l.hasPrefix("#filter("):
		l.pos += len("#filter(")
		l.start = l.pos
		return lexBody(l, lexemeFilterCall)

	case l.hasPrefix("#"):
		return lexFunction

	default:
		return lexIdentifier(l, lexemeChild)
	}
}

func lexDescendant(l *lexer) stateFn {
	l.pos += len("..")
	l.start = l.pos
	if l.hasPrefix("(") {
		return lexBracket(l, lexemeDescendantPair, '(', ')')
	}
	return lexIdentifier(l, lexemeDescendantSingle)
}

// lexIdentifier scans a bare name up to the next separator.
func lexIdentifier(l *lexer, typ lexemeType) stateFn {
	start := l.pos
	for {
		r := l.peek()
		if r == eof || r == '/' || unicode.IsSpace(r) {
			break
		}
		l.next()
	}
	if l.pos == start {
		return l.errorf("expected identifier at position %d", l.pos)
	}
	l.emit(typ)
	return lexAfterSegment
}

// lexBracket scans a balanced, quote-aware run delimited by open/close
// and emits its *inner* text (without the delimiters).
func lexBracket(l *lexer, typ lexemeType, open, close rune) stateFn {
	if l.next() != open {
		return l.errorf("expected %q at position %d", open, l.pos)
	}
	innerStart := l.pos
	end, err := scanBalanced(l.input, l.pos, open, close)
	if err != nil {
		return l.errorf("%s", err.Error())
	}
	l.pos = end
	inner := l.input[innerStart:end]
	l.next() // consume the closing delimiter
	l.emitValue(typ, inner)
	return lexAfterSegment
}

// lexBody is like lexBracket but the opening delimiter has already been
// consumed by the caller (used for #pick(/#filter( which include the
// keyword in their prefix check).
func lexBody(l *lexer, typ lexemeType) stateFn {
	end, err := scanBalanced(l.input, l.pos, '(', ')')
	if err != nil {
		return l.errorf("%s", err.Error())
	}
	inner := l.input[l.start:end]
	l.pos = end
	l.next() // consume the closing ')'
	l.emitValue(typ, inner)
	return lexAfterSegment
}

func lexFunction(l *lexer) stateFn {
	l.next() // consume '#'
	l.start = l.pos
	for {
		r := l.peek()
		if r == eof || r == '(' || r == '/' || unicode.IsSpace(r) || l.hasPrefix("->") {
			break
		}
		l.next()
	}
	if l.pos == l.start {
		return l.errorf("expected function name at position %d", l.pos)
	}
	name := l.value()
	l.emitValue(lexemeFuncName, name)
	if !l.hasPrefix("(") {
		// A niladic call (e.g. "#len") may omit the empty parens.
		l.emitValue(lexemeFuncArgs, "")
		return lexAfterSegment
	}
	l.next()
	l.start = l.pos
	return lexBody(l, lexemeFuncArgs)
}

// scanBalanced returns the index of the close rune matching the open
// rune already consumed at pos-1, skipping over characters inside
// single-quoted string literals and honoring nested open/close pairs.
func scanBalanced(input string, pos int, open, close rune) (int, error) {
	depth := 1
	inString := false
	for pos < len(input) {
		r, w := utf8.DecodeRuneInString(input[pos:])
		switch {
		case inString:
			if r == '\'' {
				inString = false
			}
		case r == '\'':
			inString = true
		case r == open:
			depth++
		case r == close:
			depth--
			if depth == 0 {
				return pos, nil
			}
		}
		pos += w
	}
	return 0, fmt.Errorf("unmatched %q", open)
}
