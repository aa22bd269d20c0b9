package engine

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// piece is a run of text with its byte range in the original input. For
// markup containing entities, text is the unescaped form of the range.
type piece struct {
	start, end int
	text       string
	letters    int
}

// segment groups consecutive pieces into a unit large enough to classify.
type segment struct {
	pieces  []piece
	bytes   int
	letters int
}

func (s segment) text() string {
	if len(s.pieces) == 1 {
		return s.pieces[0].text
	}
	parts := make([]string, len(s.pieces))
	for i, p := range s.pieces {
		parts[i] = p.text
	}
	return strings.Join(parts, " ")
}

const minSegmentBytes = 320

// skippedElements never contribute text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"textarea": true,
}

// plainPieces splits plain text into sentence pieces.
func plainPieces(buf []byte) []piece {
	return appendSentences(nil, buf, 0)
}

// markupPieces tokenizes buf as HTML and keeps the text outside tags,
// comments and skipped elements. Offsets refer to buf.
func markupPieces(buf []byte, trace func(msg string, args ...any)) []piece {
	var pieces []piece
	z := html.NewTokenizer(bytes.NewReader(buf))
	offset := 0
	depth := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return pieces
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			if skippedElements[string(name)] {
				depth++
				trace("skipping element", "tag", string(name), "offset", start)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skippedElements[string(name)] && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth > 0 || offset > len(buf) {
				continue
			}
			region := buf[start:offset]
			if bytes.IndexByte(region, '&') >= 0 {
				pieces = appendEscaped(pieces, region, start)
			} else {
				pieces = appendSentences(pieces, region, start)
			}
		}
	}
}

// appendEscaped keeps an entity-bearing text token whole, unescaping its text.
func appendEscaped(pieces []piece, region []byte, base int) []piece {
	s, e := trimSpace(region, 0, len(region))
	if s >= e {
		return pieces
	}
	text := html.UnescapeString(string(region[s:e]))
	if n := countLetters(text); n > 0 {
		pieces = append(pieces, piece{start: base + s, end: base + e, text: text, letters: n})
	}
	return pieces
}

// appendSentences splits region on sentence terminators and line breaks.
func appendSentences(pieces []piece, region []byte, base int) []piece {
	start := 0
	for i := 0; i < len(region); {
		r, size := utf8.DecodeRune(region[i:])
		i += size
		if isBoundary(r, region, i) {
			pieces = appendPiece(pieces, region, start, i, base)
			start = i
		}
	}
	return appendPiece(pieces, region, start, len(region), base)
}

func isBoundary(r rune, region []byte, next int) bool {
	switch r {
	case '\n', '。', '！', '？', '।', '۔':
		return true
	case '.', '!', '?':
		if next >= len(region) {
			return true
		}
		nr, _ := utf8.DecodeRune(region[next:])
		return unicode.IsSpace(nr)
	}
	return false
}

func appendPiece(pieces []piece, region []byte, s, e, base int) []piece {
	s, e = trimSpace(region, s, e)
	if s >= e {
		return pieces
	}
	text := string(region[s:e])
	n := countLetters(text)
	if n == 0 {
		return pieces
	}
	return append(pieces, piece{start: base + s, end: base + e, text: text, letters: n})
}

func trimSpace(b []byte, s, e int) (int, int) {
	for s < e {
		r, size := utf8.DecodeRune(b[s:e])
		if !unicode.IsSpace(r) {
			break
		}
		s += size
	}
	for e > s {
		r, size := utf8.DecodeLastRune(b[s:e])
		if !unicode.IsSpace(r) {
			break
		}
		e -= size
	}
	return s, e
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

// group packs pieces into segments of at least minSegmentBytes. A short tail
// is folded into the previous segment.
func group(pieces []piece) []segment {
	var segs []segment
	var cur segment
	for _, p := range pieces {
		cur.pieces = append(cur.pieces, p)
		cur.bytes += p.end - p.start
		cur.letters += p.letters
		if cur.bytes >= minSegmentBytes {
			segs = append(segs, cur)
			cur = segment{}
		}
	}
	if len(cur.pieces) == 0 {
		return segs
	}
	if len(segs) > 0 && cur.bytes < minSegmentBytes/2 {
		last := &segs[len(segs)-1]
		last.pieces = append(last.pieces, cur.pieces...)
		last.bytes += cur.bytes
		last.letters += cur.letters
		return segs
	}
	return append(segs, cur)
}

// onlySpace reports whether b holds nothing but whitespace.
func onlySpace(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}
