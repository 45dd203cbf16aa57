package textengine

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/editorbind/engine"
)

// fullRange returns the range covering all of text.
func fullRange(text string) engine.Range {
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	return engine.Range{
		Start: engine.Position{Line: 1, Column: 1},
		End:   engine.Position{Line: len(lines), Column: utf8.RuneCountInString(last) + 1},
	}
}

// offset converts a position to a byte offset, clamping to the text.
func offset(text string, pos engine.Position) int {
	if pos.Line < 1 {
		return 0
	}
	off := 0
	for line := 1; line < pos.Line; line++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return len(text)
		}
		off += i + 1
	}

	col := 1
	for off < len(text) && col < pos.Column {
		r, size := utf8.DecodeRuneInString(text[off:])
		if r == '\n' {
			break
		}
		off += size
		col++
	}
	return off
}

func comparePos(a, b engine.Position) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Column < b.Column:
		return -1
	case a.Column > b.Column:
		return 1
	}
	return 0
}

// applyEdits applies edits to text. Edits are applied from the last range to
// the first so earlier offsets stay valid; overlapping edits are rejected.
func applyEdits(text string, edits []engine.Edit) (string, bool) {
	type span struct {
		start, end int
		text       string
	}
	spans := make([]span, 0, len(edits))
	for _, e := range edits {
		r := e.Range
		if comparePos(r.Start, r.End) > 0 {
			r.Start, r.End = r.End, r.Start
		}
		spans = append(spans, span{
			start: offset(text, r.Start),
			end:   offset(text, r.End),
			text:  e.Text,
		})
	}

	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start < spans[j-1].start; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return text, false
		}
	}

	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		text = text[:s.start] + s.text + text[s.end:]
	}
	return text, true
}
