package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const healthDetailLimit = 80

func (m *model) View() string {
	if m.closed {
		return ""
	}
	parts := []string{m.headerView(), m.composerView()}
	switch {
	case m.errorMessage != "":
		parts = append(parts, m.errorView())
	case len(m.blocks) > 0:
		parts = append(parts, m.answerView())
	}
	parts = append(parts, m.examplesView(), m.footerView())
	return joinNonEmpty(parts)
}

func (m *model) headerView() string {
	settings := m.config.Settings
	lines := []string{m.styles.title.Render(settings.Title)}
	if settings.Subtitle != "" {
		lines = append(lines, m.styles.subtitle.Render(settings.Subtitle))
	}
	return m.styles.header.Render(strings.Join(lines, "\n"))
}

func (m *model) composerView() string {
	label := m.styles.sectionHeader.Render("Ask a Question")
	box := m.styles.composer
	if m.loading {
		box = m.styles.composerBusy
	}
	status := m.styles.helper.Render("Press enter to submit, alt+enter for a new line.")
	if m.loading {
		status = fmt.Sprintf("%s %s", m.spinner.View(), m.styles.helper.Render(busyLabel))
	}
	return strings.Join([]string{label, box.Render(m.composer.View()), status}, "\n")
}

func (m *model) errorView() string {
	body := m.styles.errorTitle.Render("Error:") + "\n" + m.errorMessage
	return m.styles.errorBox.Width(m.layout.contentWidth - 2).Render(body)
}

func (m *model) answerView() string {
	title := m.styles.sectionHeader.Render("Answer")
	if !m.viewport.AtTop() || !m.viewport.AtBottom() {
		title = fmt.Sprintf("%s %s", title, m.styles.helper.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)))
	}
	return title + "\n" + m.styles.answerBox.Render(m.viewport.View())
}

func (m *model) examplesView() string {
	if len(m.examples) == 0 {
		return ""
	}
	title := m.styles.sectionHeader.Render("Examples")
	if m.focus == focusExamples {
		title += " " + m.styles.helper.Render("(enter or 1-9 to use, esc to go back)")
	} else {
		title += " " + m.styles.helper.Render("(tab to browse)")
	}

	width := m.layout.contentWidth
	var rows []string
	var row []string
	rowWidth := 0
	for i, ex := range m.examples {
		label := ex.DisplayLabel()
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		style := m.styles.pill
		switch {
		case m.loading:
			style = m.styles.pillDisabled
		case m.focus == focusExamples && i == m.exampleCursor:
			style = m.styles.pillActive
		}
		pill := style.Render(label)
		pillWidth := lipgloss.Width(pill) + 1
		if rowWidth > 0 && rowWidth+pillWidth > width {
			rows = append(rows, strings.Join(row, " "))
			row = nil
			rowWidth = 0
		}
		row = append(row, pill)
		rowWidth += pillWidth
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	if m.focus == focusExamples && m.exampleCursor < len(m.examples) {
		preview := previewText(m.examples[m.exampleCursor].Text, width-2)
		rows = append(rows, m.styles.helper.Render("› "+preview))
	}
	return title + "\n" + strings.Join(rows, "\n")
}

func (m *model) footerView() string {
	lines := []string{m.statusLine()}
	if m.infoMessage != "" {
		lines = append(lines, m.styles.helper.Render(m.infoMessage))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *model) statusLine() string {
	var badge string
	switch m.apiStatus {
	case statusOnline:
		badge = m.styles.statusOnline.Render("● " + m.apiStatus.Label())
	case statusOffline:
		badge = m.styles.statusOffline.Render("● " + m.apiStatus.Label())
	default:
		badge = m.styles.statusWaiting.Render("○ " + m.apiStatus.Label())
	}
	meta := []string{badge, m.styles.helper.Render(m.config.Settings.APIBaseURL)}
	if detail := m.healthDetail(); detail != "" {
		meta = append(meta, m.styles.helper.Render(previewText(detail, healthDetailLimit)))
	}
	meta = append(meta, m.jobBadges()...)
	return strings.Join(meta, "  •  ")
}

func (m *model) jobBadges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindAsk, jobKindHealth} {
		snapshot, ok := m.lastJobs[kind]
		if !ok || snapshot.Status != jobStatusRunning {
			continue
		}
		label := fmt.Sprintf("%s running", kind)
		if snapshot.Seq > 0 {
			label = fmt.Sprintf("%s #%d running", kind, snapshot.Seq)
		}
		badges = append(badges, m.styles.helper.Render(label))
	}
	return badges
}

// healthDetail explains an offline badge when the backend said why.
func (m *model) healthDetail() string {
	if m.apiStatus != statusOffline {
		return ""
	}
	report := m.lastHealth
	switch {
	case report.InitError != "":
		return report.InitError
	case report.Message != "":
		return report.Message
	case report.Status != "":
		return "status: " + report.Status
	case report.HTTPStatus != 0:
		return fmt.Sprintf("health returned %d", report.HTTPStatus)
	}
	return ""
}
