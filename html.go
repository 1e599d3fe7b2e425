package epubkit

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlEntities maps the HTML named entities seen in real-world package
// documents to their code points. XML parsers reject these names, so they are
// rewritten as numeric character references before parsing.
var htmlEntities = map[string]string{
	"nbsp": "160", "mdash": "8212", "ndash": "8211", "hellip": "8230",
	"lsquo": "8216", "rsquo": "8217", "ldquo": "8220", "rdquo": "8221",
	"copy": "169", "reg": "174", "trade": "8482", "bull": "8226", "middot": "183",
	"eacute": "233", "egrave": "232", "ecirc": "234", "euml": "235",
	"aacute": "225", "agrave": "224", "acirc": "226", "auml": "228",
	"iacute": "237", "igrave": "236", "icirc": "238", "iuml": "239",
	"oacute": "243", "ograve": "242", "ocirc": "244", "ouml": "246",
	"uacute": "250", "ugrave": "249", "ucirc": "251", "uuml": "252",
	"ntilde": "241", "ccedil": "231", "times": "215", "divide": "247",
	"deg": "176", "para": "182", "sect": "167", "laquo": "171", "raquo": "187",
	"iexcl": "161", "iquest": "191",
}

var htmlEntityPattern = func() *regexp.Regexp {
	names := make([]string, 0, len(htmlEntities))
	for name := range htmlEntities {
		names = append(names, name)
	}
	sort.Strings(names)
	return regexp.MustCompile(`(?i)&(` + strings.Join(names, "|") + `);`)
}()

// preprocessHTMLEntities replaces known HTML named entities, matched
// case-insensitively, with numeric character references.
func preprocessHTMLEntities(data []byte) []byte {
	if bytes.IndexByte(data, '&') < 0 {
		return data
	}
	return htmlEntityPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.ToLower(string(match[1 : len(match)-1]))
		if code, ok := htmlEntities[name]; ok {
			return []byte("&#" + code + ";")
		}
		return match
	})
}

// blockTags start a new line during text extraction.
var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Div: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Hr: true,
}

// skipTags have no visible text.
var skipTags = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
}

// XHTML allows <script/>, which an HTML tokenizer reads as an unclosed start
// tag swallowing the rest of the document.
var selfClosingSkipTagPattern = regexp.MustCompile(`(?is)<(script|style)\b([^>]*)/>`)

// extractText returns the visible text of an (X)HTML document, one line per
// block element, with whitespace runs collapsed.
func extractText(data []byte) (string, error) {
	data = selfClosingSkipTagPattern.ReplaceAll(data, []byte(`<$1$2></$1>`))
	z := html.NewTokenizer(bytes.NewReader(data))

	var buf strings.Builder
	skipDepth := 0
	atLineStart := true
	newline := func() {
		if buf.Len() > 0 && !atLineStart {
			buf.WriteByte('\n')
			atLineStart = true
		}
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return strings.TrimSpace(buf.String()), nil

		case html.StartTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skipTags[a] {
				skipDepth++
			} else if skipDepth == 0 && blockTags[a] {
				newline()
			}

		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if skipDepth == 0 && blockTags[atom.Lookup(name)] {
				newline()
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if skipTags[atom.Lookup(name)] && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if text := collapseWhitespace(string(z.Text())); text != "" {
				buf.WriteString(text)
				atLineStart = strings.HasSuffix(text, "\n")
			}
		}
	}
}

// collapseWhitespace squeezes whitespace runs into single spaces. A run at
// either end survives as one space so inline elements keep their spacing;
// all-whitespace input yields "".
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
