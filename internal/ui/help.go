package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// helpContent renders the help text shown in the pager
func helpContent() string {
	var help strings.Builder

	section := func(name string) {
		help.WriteString("\n")
		help.WriteString(name)
		help.WriteString("\n")
	}
	entry := func(key, desc string) {
		help.WriteString(fmt.Sprintf("  %-14s %s\n", key, desc))
	}

	help.WriteString("folio help\n")

	section("Library")
	entry("j/k, ↑/↓", "Move selection")
	entry("enter", "Open document")
	entry("r", "Rescan library")

	section("Reader")
	entry("←/→, h/l", "Turn one page")
	entry("space, pgdn", "Next page")
	entry("home / end", "First / last page")
	entry("g", "Go to page")
	entry("t", "Toggle tap zones")

	section("Gestures")
	entry("scroll", "Keep scrolling to turn; the bar shows progress")
	entry("click", "Left half previous, right half next")
	entry("drag", "Horizontal drag turns like a swipe")

	section("Other")
	entry("?", "This help")
	entry("q", "Back / quit")

	return help.String()
}

// showHelp opens the help text in the ov pager, releasing the terminal
// while it runs
func (m *Model) showHelp() tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{err: m.runHelpPager(helpContent())}
	}
}

func (m *Model) runHelpPager(content string) error {
	if m.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := m.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay so ov has fully exited before restoring
		time.Sleep(100 * time.Millisecond)
		_ = m.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write pager content on exit, it would mangle our screen
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
