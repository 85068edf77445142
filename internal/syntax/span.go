// # internal/syntax/span.go
package syntax

import "fmt"

// Position is a zero-based line/column pair within a source file.
type Position struct {
	Line   int
	Column int
}

// Span covers a half-open region of source text.
type Span struct {
	Start Position
	End   Position
}

func NewSpan(startLine, startCol, endLine, endCol int) Span {
	return Span{
		Start: Position{Line: startLine, Column: startCol},
		End:   Position{Line: endLine, Column: endCol},
	}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}
