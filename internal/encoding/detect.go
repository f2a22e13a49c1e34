// Package encoding normalizes uploaded catalog files to UTF-8 before
// parsing. Legacy spreadsheet tools still emit Windows-1252 and UTF-16.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r in a reader that yields UTF-8.
//
// Detection order: BOM, UTF-8 validation, chardet heuristic, Windows-1252
// fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	// Peek enough bytes for BOM detection and charset heuristics.
	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if decoded, ok := bomReader(br, buf); ok {
		return decoded, nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	if decoded, ok := detectedReader(br, buf); ok {
		return decoded, nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// bomReader resolves byte-order-marked input. The UTF-8 BOM is stripped,
// UTF-16 is decoded.
func bomReader(br *bufio.Reader, buf []byte) (io.Reader, bool) {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, true
	case bytes.HasPrefix(buf, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), true
	case bytes.HasPrefix(buf, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), true
	}

	return nil, false
}

// detectedReader applies the chardet heuristic for the charsets legacy
// catalog exports actually show up in.
func detectedReader(br *bufio.Reader, buf []byte) (io.Reader, bool) {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return nil, false
	}

	switch result.Charset {
	case "UTF-8":
		return br, true
	case "ISO-8859-1", "windows-1252":
		return transform.NewReader(br, charmap.Windows1252.NewDecoder()), true
	case "ISO-8859-15":
		return transform.NewReader(br, charmap.ISO8859_15.NewDecoder()), true
	case "ISO-8859-9":
		return transform.NewReader(br, charmap.ISO8859_9.NewDecoder()), true
	}

	return nil, false
}
