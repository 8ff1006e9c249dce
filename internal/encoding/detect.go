package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	prologEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)
)

// NewUTF8Reader returns a reader that yields the content of r as UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. encoding attribute of the XML declaration, when it names a known charset
//     and the bytes agree with it
//  3. valid UTF-8 is returned as-is
//  4. chardet heuristics
//  5. Windows-1252
//
// Fiscal documents from older emitters are frequently ISO-8859-1 and some lie
// about it in the prolog in either direction, so the declaration is checked
// against the content before it is trusted.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	validUTF8 := utf8.Valid(trimPartialRune(buf))

	if enc, ok := declared(buf); ok {
		switch {
		case enc == unicode.UTF8:
			if validUTF8 {
				return br, nil
			}
		// A single-byte charset almost never yields valid multi-byte UTF-8
		// by accident, so such content is UTF-8 whatever the prolog says.
		case validUTF8 && hasMultiByte(buf):
			return br, nil
		default:
			return decode(br, enc), nil
		}
	}

	if validUTF8 {
		return br, nil
	}

	if enc := detect(buf); enc != nil {
		if enc == unicode.UTF8 {
			return br, nil
		}

		return decode(br, enc), nil
	}

	return decode(br, charmap.Windows1252), nil
}

// Charset reports the encoding name declared in an XML prolog, or "" when
// there is none.
func Charset(prolog []byte) string {
	m := prologEncoding.FindSubmatch(prolog)
	if m == nil {
		return ""
	}

	return string(m[1])
}

func declared(buf []byte) (encoding.Encoding, bool) {
	label := Charset(buf)
	if label == "" {
		return nil, false
	}

	enc, err := htmlindex.Get(strings.ToLower(label))
	if err != nil {
		return nil, false
	}

	return enc, true
}

func detect(buf []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "UTF-8":
		return unicode.UTF8
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-9":
		return charmap.ISO8859_9
	case "ISO-8859-15":
		return charmap.ISO8859_15
	}

	return nil
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}

func hasMultiByte(buf []byte) bool {
	for _, b := range buf {
		if b >= utf8.RuneSelf {
			return true
		}
	}

	return false
}

// trimPartialRune drops a multi-byte sequence cut off by the peek window.
func trimPartialRune(buf []byte) []byte {
	if len(buf) < peekSize {
		return buf
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}

			break
		}
	}

	return buf
}
