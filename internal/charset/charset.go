// Package charset decodes ledger export files before they reach the
// reader. SIE files are written in IBM code page 437 by convention, but
// exports in Latin-1 or UTF-8 circulate too, so the encoding is a caller
// choice. Decoding also collapses tabs and non-breaking spaces to plain
// spaces, which the reader assumes.
package charset

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Default is the encoding assumed when none is given.
const Default = "cp437"

var encodings = map[string]encoding.Encoding{
	"cp437":  charmap.CodePage437,
	"latin1": charmap.ISO8859_1,
	"utf8":   unicode.UTF8,
}

// Names returns the supported encoding names.
func Names() []string {
	return []string{"cp437", "latin1", "utf8"}
}

// NewReader wraps r so that it yields normalized UTF-8 text.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	if name == "" {
		name = Default
	}
	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return transform.NewReader(r, transform.Chain(enc.NewDecoder(), normalizer{})), nil
}

// normalizer maps tabs and non-breaking spaces to plain spaces.
type normalizer struct{}

func (normalizer) Reset() {}

func (normalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		// U+00A0 is 0xC2 0xA0 in UTF-8.
		if c == 0xC2 {
			if nSrc+1 >= len(src) {
				if atEOF {
					// Lone 0xC2 at EOF: pass through.
					if nDst >= len(dst) {
						return nDst, nSrc, transform.ErrShortDst
					}
					dst[nDst] = c
					nDst++
					nSrc++
					continue
				}
				return nDst, nSrc, transform.ErrShortSrc
			}
			if src[nSrc+1] == 0xA0 {
				if nDst >= len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = ' '
				nDst++
				nSrc += 2
				continue
			}
		}
		if c == '\t' {
			c = ' '
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}
