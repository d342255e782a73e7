package answer

import "strings"

// Span is a run of text with uniform emphasis.
type Span struct {
	Text string
	Bold bool
}

// Spans splits **bold** runs out of line. An unmatched ** is kept literally.
func Spans(line string) []Span {
	var spans []Span
	rest := line
	for rest != "" {
		open := strings.Index(rest, "**")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open+2:], "**")
		if end < 0 {
			break
		}
		end += open + 2
		if open > 0 {
			spans = append(spans, Span{Text: rest[:open]})
		}
		if inner := rest[open+2 : end]; inner != "" {
			spans = append(spans, Span{Text: inner, Bold: true})
		}
		rest = rest[end+2:]
	}
	if rest != "" {
		spans = append(spans, Span{Text: rest})
	}
	return spans
}

// StripEmphasis drops ** markers that Spans would render as bold.
func StripEmphasis(line string) string {
	var b strings.Builder
	for _, span := range Spans(line) {
		b.WriteString(span.Text)
	}
	return b.String()
}
