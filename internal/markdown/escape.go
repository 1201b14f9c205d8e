package markdown

import (
	"regexp"
	"strings"
)

const lineBreak = "<br>"

var (
	newlineRegex = regexp.MustCompile(`\r?\n`)
	// brTagRegex matches a line-break tag at the start of the input, e.g. "<br>", "<br/>", "< BR / >".
	brTagRegex = regexp.MustCompile(`(?i)^<\s*br\s*/*\s*>`)

	htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// EscapeHTML escapes &, < and > for text placed inside HTML elements.
func EscapeHTML(text string) string {
	return htmlReplacer.Replace(text)
}

// EscapeTableCell makes text safe for a single Markdown table cell.
// Newlines become <br>, pipes are backslash-escaped, and angle brackets are
// entity-escaped unless they belong to a <br> tag.
func EscapeTableCell(text string) string {
	text = newlineRegex.ReplaceAllString(text, lineBreak)
	text = strings.ReplaceAll(text, "|", `\|`)

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '<':
			if tag := brTagRegex.FindString(text[i:]); tag != "" {
				b.WriteString(tag)
				i += len(tag) - 1
				continue
			}
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
