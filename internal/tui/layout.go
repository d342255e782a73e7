package tui

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/docsask/internal/answer"
)

type pageLayout struct {
	windowWidth   int
	windowHeight  int
	contentWidth  int
	answerHeight  int
	composerWidth int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth:  80,
		answerHeight:  10,
		composerWidth: 76,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	inner := width - viewportHorizontalPadding
	if inner < minComposerWidth {
		inner = minComposerWidth
	}
	l.contentWidth = inner
	// Rounded border eats one column per side.
	l.composerWidth = inner - 2
	// header(4) composer(composerRows+2) examples(3) footer(3) gaps(4) answer title(1)
	const chrome = 4 + composerRows + 2 + 3 + 3 + 4 + 1
	usable := height - chrome
	if usable < 5 {
		usable = 5
	}
	l.answerHeight = usable
}

func (m *model) applyLayout() {
	m.composer.SetWidth(m.layout.composerWidth)
	m.viewport.Width = m.layout.contentWidth - 3
	m.help.Width = m.layout.contentWidth
	m.refreshAnswerViewport()
}

// refreshAnswerViewport re-renders the answer blocks at the current width and
// shrinks the viewport to short answers.
func (m *model) refreshAnswerViewport() {
	if len(m.blocks) == 0 {
		m.viewport.SetContent("")
		return
	}
	content := m.renderBlocks(m.blocks, m.wrapWidth())
	lines := strings.Count(content, "\n") + 1
	height := m.layout.answerHeight
	if lines < height {
		height = lines
	}
	m.viewport.Height = height
	m.viewport.SetContent(content)
}

func (m *model) wrapWidth() int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m *model) renderBlocks(blocks []answer.Block, width int) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		switch block.Kind {
		case answer.List:
			items := make([]string, 0, len(block.Items))
			for i, item := range block.Items {
				prefix := answer.ItemPrefix(block, i)
				pad := 2 + len([]rune(prefix))
				wrapped := wordwrap.String(m.emphasize(item), width-pad)
				lines := strings.SplitN(wrapped, "\n", 2)
				rendered := "  " + m.styles.bullet.Render(prefix) + lines[0]
				if len(lines) == 2 {
					rendered += "\n" + indent.String(lines[1], uint(pad))
				}
				items = append(items, rendered)
			}
			parts = append(parts, strings.Join(items, "\n"))
		default:
			parts = append(parts, wordwrap.String(m.emphasize(block.Text), width))
		}
	}
	return strings.Join(parts, "\n\n")
}

// emphasize styles **bold** runs. Spans are rendered one line at a time so
// lipgloss never pads a multi-line span; wordwrap is ANSI-aware, so wrapping
// happens after styling.
func (m *model) emphasize(text string) string {
	var b strings.Builder
	for _, span := range answer.Spans(text) {
		style := m.styles.answerText
		if span.Bold {
			style = m.styles.bold
		}
		for i, line := range strings.Split(span.Text, "\n") {
			if i > 0 {
				b.WriteRune('\n')
			}
			if line != "" {
				b.WriteString(style.Render(line))
			}
		}
	}
	return b.String()
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
