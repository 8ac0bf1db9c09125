package sie

import "strings"

// fields walks the space-separated fields of one ledger line. Quoted
// fields keep embedded spaces; amounts are matched against the raw
// remainder because display-style amounts contain thousands spaces.
type fields struct {
	s   string
	pos int
}

func newFields(s string) *fields {
	return &fields{s: s}
}

func (f *fields) skipSpaces() {
	for f.pos < len(f.s) && f.s[f.pos] == ' ' {
		f.pos++
	}
}

func (f *fields) done() bool {
	f.skipSpaces()
	return f.pos >= len(f.s)
}

// next returns the next field: the content of a quoted string, or a bare
// word ending at the next space.
func (f *fields) next() (string, bool) {
	if f.done() {
		return "", false
	}
	if f.s[f.pos] == '"' {
		start := f.pos + 1
		end := strings.IndexByte(f.s[start:], '"')
		if end < 0 {
			// Unterminated quote: take the remainder.
			f.pos = len(f.s)
			return f.s[start:], true
		}
		f.pos = start + end + 1
		return f.s[start : start+end], true
	}
	start := f.pos
	for f.pos < len(f.s) && f.s[f.pos] != ' ' {
		f.pos++
	}
	return f.s[start:f.pos], true
}

// nextOrRest returns a quoted field if one follows, otherwise the whole
// trimmed remainder of the line.
func (f *fields) nextOrRest() (string, bool) {
	if f.done() {
		return "", false
	}
	if f.s[f.pos] == '"' {
		return f.next()
	}
	rest := strings.TrimSpace(f.s[f.pos:])
	f.pos = len(f.s)
	return rest, true
}

// amount returns the raw text occupying the amount position: a leading
// amount-shaped match on the remainder, extended over any adjacent
// non-space characters so that malformed values are reported whole.
func (f *fields) amount() (string, bool) {
	if f.done() {
		return "", false
	}
	rest := f.s[f.pos:]
	m := amountPattern.FindString(rest)
	if m == "" {
		// Not amount-shaped at all: report the next word.
		return f.next()
	}
	end := len(m)
	for end < len(rest) && rest[end] != ' ' {
		end++
	}
	f.pos += end
	return rest[:end], true
}

// skipObjectList consumes a bracketed dimension/object reference "{...}"
// if one is next.
func (f *fields) skipObjectList() {
	if f.done() || f.s[f.pos] != '{' {
		return
	}
	end := strings.IndexByte(f.s[f.pos:], '}')
	if end < 0 {
		f.pos = len(f.s)
		return
	}
	f.pos += end + 1
}
