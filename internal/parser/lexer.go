// # internal/parser/lexer.go
package parser

import (
	"strings"

	"syskb/internal/syntax"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokComment // block comment text, delimiters stripped
	tokLBrace
	tokRBrace
	tokSemi
	tokComma
	tokEquals
	tokColon      // :
	tokSubsets    // :>
	tokRedefines  // :>>
	tokReferences // ::>
	tokPathSep    // ::
	tokStar       // *
)

type token struct {
	kind tokenKind
	text string
	pos  syntax.Position
}

// lex splits src into tokens. Line comments are discarded; block
// comments become tokComment tokens so that documentation bodies survive.
func lex(src string) []token {
	var toks []token
	line, col := 0, 0
	i := 0
	emit := func(kind tokenKind, text string, p syntax.Position) {
		toks = append(toks, token{kind: kind, text: text, pos: p})
	}
	advance := func(n int) {
		for j := 0; j < n; j++ {
			if src[i+j] == '\n' {
				line++
				col = 0
			} else {
				col++
			}
		}
		i += n
	}

	for i < len(src) {
		c := src[i]
		pos := syntax.Position{Line: line, Column: col}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			advance(1)
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				advance(1)
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			start := i + 2
			advance(2)
			for i < len(src) && !(src[i] == '*' && i+1 < len(src) && src[i+1] == '/') {
				advance(1)
			}
			text := strings.TrimSpace(src[start:i])
			if i < len(src) {
				advance(2)
			}
			emit(tokComment, text, pos)
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				advance(1)
			}
			emit(tokIdent, src[start:i], pos)
		case c == ':':
			switch {
			case strings.HasPrefix(src[i:], "::>"):
				advance(3)
				emit(tokReferences, "::>", pos)
			case strings.HasPrefix(src[i:], "::"):
				advance(2)
				emit(tokPathSep, "::", pos)
			case strings.HasPrefix(src[i:], ":>>"):
				advance(3)
				emit(tokRedefines, ":>>", pos)
			case strings.HasPrefix(src[i:], ":>"):
				advance(2)
				emit(tokSubsets, ":>", pos)
			default:
				advance(1)
				emit(tokColon, ":", pos)
			}
		case c == '{':
			advance(1)
			emit(tokLBrace, "{", pos)
		case c == '}':
			advance(1)
			emit(tokRBrace, "}", pos)
		case c == ';':
			advance(1)
			emit(tokSemi, ";", pos)
		case c == ',':
			advance(1)
			emit(tokComma, ",", pos)
		case c == '=':
			advance(1)
			emit(tokEquals, "=", pos)
		case c == '*':
			advance(1)
			emit(tokStar, "*", pos)
		default:
			// Unknown byte; skip it so the parser can resynchronize.
			advance(1)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: syntax.Position{Line: line, Column: col}})
	return toks
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '\'' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
