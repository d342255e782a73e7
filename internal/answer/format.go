// Package answer turns a backend answer string into display blocks.
//
// The transform is presentation-only: it splits on blank lines and detects
// bullet or numbered lists, but never rewrites the words of the answer.
package answer

import (
	"regexp"
	"strings"
)

// BlockKind distinguishes paragraphs from lists.
type BlockKind int

const (
	Paragraph BlockKind = iota
	List
)

func (k BlockKind) String() string {
	if k == List {
		return "list"
	}
	return "paragraph"
}

// Block is one rendered unit of an answer.
type Block struct {
	Kind BlockKind
	// Text holds a paragraph with its internal line breaks.
	Text string
	// Items holds list entries with their markers stripped.
	Items []string
	// Ordered is set when the list opened with a numbered marker.
	Ordered bool
	// Numerals keeps the number each item was written with ("" for bullet
	// lines). It is nil when no item was numbered.
	Numerals []string
}

var (
	bulletMarker   = regexp.MustCompile(`^[-*•]\s`)
	numberedMarker = regexp.MustCompile(`^(\d+)\.\s`)
	blankLineRun   = regexp.MustCompile(`\n[ \t]*\n\s*`)
)

// Format splits text into paragraph and list blocks.
func Format(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []Block
	for _, raw := range blankLineRun.Split(text, -1) {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		blocks = append(blocks, formatBlock(raw))
	}
	return blocks
}

func formatBlock(raw string) Block {
	first := firstNonBlankLine(raw)
	bullet := bulletMarker.MatchString(first)
	numbered := numberedMarker.MatchString(first)
	if !bullet && !numbered {
		return Block{Kind: Paragraph, Text: strings.TrimSpace(raw)}
	}
	block := Block{Kind: List, Ordered: numbered}
	var numerals []string
	anyNumbered := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		numeral := ""
		if m := numberedMarker.FindStringSubmatch(line); m != nil {
			numeral = m[1]
			anyNumbered = true
		}
		block.Items = append(block.Items, StripMarker(line))
		numerals = append(numerals, numeral)
	}
	if anyNumbered {
		block.Numerals = numerals
	}
	return block
}

func firstNonBlankLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// IsListMarker reports whether line opens with a bullet or numbered marker.
func IsListMarker(line string) bool {
	line = strings.TrimSpace(line)
	return bulletMarker.MatchString(line) || numberedMarker.MatchString(line)
}

// StripMarker removes one leading list marker from line.
func StripMarker(line string) string {
	line = strings.TrimSpace(line)
	if loc := bulletMarker.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	if loc := numberedMarker.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:])
	}
	return line
}

// Plain renders blocks back into text, one blank line between blocks.
func Plain(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block.Kind == Paragraph {
			parts = append(parts, block.Text)
			continue
		}
		lines := make([]string, 0, len(block.Items))
		for i, item := range block.Items {
			lines = append(lines, ItemPrefix(block, i)+item)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// ItemPrefix is the marker drawn in front of list item i: the item's own
// number when it had one, a bullet otherwise.
func ItemPrefix(block Block, i int) string {
	if i < len(block.Numerals) && block.Numerals[i] != "" {
		return block.Numerals[i] + ". "
	}
	return "• "
}
