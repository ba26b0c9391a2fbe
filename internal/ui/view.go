package ui

import (
	"fmt"
	"strings"

	"folio/internal/turn"
)

// View renders the active screen
func (m *Model) View() string {
	switch m.mode {
	case viewReader:
		return m.viewReader()
	default:
		return m.viewLibrary()
	}
}

func (m *Model) viewLibrary() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("folio"))
	b.WriteString(dimStyle.Render("  · library"))
	b.WriteString("\n\n")

	if len(m.library) == 0 {
		if m.scanning {
			b.WriteString(dimStyle.Render("  scanning..."))
		} else {
			b.WriteString(dimStyle.Render("  no documents found · press r to rescan"))
		}
		b.WriteString("\n")
	}

	visible := m.contentHeight()
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	for i := start; i < len(m.library) && i < start+visible; i++ {
		doc := m.library[i]
		line := fmt.Sprintf("%s  %s", doc.DisplayName, dimStyle.Render(doc.Format))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if line := m.viewRelated(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("j/k move · enter open · r rescan · ? help · q quit"))
	return b.String()
}

// viewRelated renders the related-documents hint for the selected entry
func (m *Model) viewRelated() string {
	if m.libSvc == nil || m.selected < 0 || m.selected >= len(m.library) {
		return ""
	}
	related := m.libSvc.Related(m.library[m.selected].Path, 3)
	if len(related) == 0 {
		return ""
	}
	names := make([]string, len(related))
	for i, doc := range related {
		names[i] = doc.DisplayName
	}
	return dimStyle.Render("related: " + strings.Join(names, " · "))
}

func (m *Model) viewReader() string {
	var b strings.Builder

	pos := m.session.Position()
	title := m.session.Path()
	if title == "" {
		title = "folio"
	}

	var pages string
	if pos.Total > 0 {
		pages = fmt.Sprintf("page %d/%d", pos.Current, pos.Total)
	} else {
		pages = fmt.Sprintf("page %d/…", pos.Current)
	}
	header := titleStyle.Render("folio") + dimStyle.Render("  "+title)
	if m.config.UISettings.ShowPageNumbers {
		header += headerStyle.Render("  "+pages)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if page, ok := m.docs.Page(pos.Current); ok {
		b.WriteString(pageStyle.Render(page))
	} else if pos.Total == 0 {
		b.WriteString(dimStyle.Render("  paginating..."))
	} else {
		b.WriteString(dimStyle.Render("  (blank page)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewFooter() string {
	var b strings.Builder

	if m.feedback.Visible {
		b.WriteString(m.viewTurnIndicator())
		b.WriteString("\n")
	}

	if m.gotoMode {
		b.WriteString("go to: " + m.gotoInput.View())
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("scroll/click/←→ turn · g goto · t tap zones · ? help · q back"))
	return b.String()
}

// viewTurnIndicator renders the accumulation progress bar with a
// direction hint
func (m *Model) viewTurnIndicator() string {
	bar := m.progressBar.ViewAs(m.feedback.Progress / 100)
	switch m.feedback.Direction {
	case turn.DirectionForward:
		return indicatorStyle.Render("» ") + bar
	case turn.DirectionBackward:
		return indicatorStyle.Render("« ") + bar
	default:
		return bar
	}
}
