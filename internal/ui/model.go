package ui

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"folio/internal/config"
	"folio/internal/document"
	"folio/internal/domain"
	"folio/internal/eventbus"
	"folio/internal/library"
	"folio/internal/reader"
	"folio/internal/turn"
)

// viewMode selects the active screen
type viewMode int

const (
	viewLibrary viewMode = iota
	viewReader
)

// wheelNotchDelta is the synthetic line-mode delta for one terminal
// wheel notch. Terminals report notches, not magnitudes, so the value
// approximates a discrete mouse wheel: three notches reach the default
// 150 threshold.
const wheelNotchDelta = 62.5

// cellSwipeUnits converts terminal cell coordinates to the swipe
// distance units the controller is configured with.
const cellSwipeUnits = 10

// Model is the bubbletea model for the whole application
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	log    zerolog.Logger

	controller *turn.Controller
	session    *reader.Session
	docs       document.Service
	libSvc     library.LibraryService

	// Library state
	library  []domain.Document
	selected int
	scanning bool

	// Reader state
	mode      viewMode
	tapZones  bool
	gotoMode  bool
	gotoInput textinput.Model
	feedback  turn.Feedback
	pressed   bool
	pressX    int

	status string

	width  int
	height int

	progressBar progress.Model

	// Controller callbacks fire on event and timer goroutines; they are
	// funneled through this channel into the update loop.
	ctrlMsgs chan tea.Msg

	// Program reference for terminal management (help pager)
	program *tea.Program
}

// NewModel creates a new UI model. libSvc may be nil; the related-
// documents line is simply omitted then.
func NewModel(bus eventbus.EventBus, cfg *config.Config, docs document.Service, libSvc library.LibraryService, log zerolog.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "page"
	ti.CharLimit = 6
	ti.Width = 8

	m := &Model{
		bus:         bus,
		config:      cfg,
		log:         log,
		docs:        docs,
		libSvc:      libSvc,
		session:     reader.NewSession(bus),
		tapZones:    cfg.UISettings.TapZones,
		gotoInput:   ti,
		progressBar: progress.New(progress.WithDefaultGradient()),
		ctrlMsgs:    make(chan tea.Msg, 64),
	}

	m.controller = turn.New(cfg.Turn.ToTurnConfig(), turn.Callbacks{
		OnTurn: func(i turn.Intent) {
			m.push(turnIntentMsg{intent: i})
		},
		OnFeedback: func(f turn.Feedback) {
			m.push(feedbackMsg{feedback: f})
		},
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Controller exposes the page-turn controller, used by main for teardown
func (m *Model) Controller() *turn.Controller {
	return m.controller
}

// push hands a controller callback to the update loop without blocking
func (m *Model) push(msg tea.Msg) {
	select {
	case m.ctrlMsgs <- msg:
	default:
		m.log.Warn().Msg("controller message channel full, dropping message")
	}
}

// waitForControllerMsg re-arms the controller message subscription
func (m *Model) waitForControllerMsg() tea.Cmd {
	return func() tea.Msg {
		return <-m.ctrlMsgs
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.waitForControllerMsg()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progressBar.Width = m.contentWidth()
		if m.mode == viewReader && m.session.Path() != "" {
			// Anchor the reading position to the page's leading source
			// line so the resize does not jump the text. While pagination
			// is still running there is nothing to remap yet.
			line := m.docs.PageStart(m.session.Position().Current)
			m.docs.Repaginate(m.contentWidth(), m.contentHeight())
			if total := m.docs.TotalPages(); total > 0 {
				pos := m.session.SetTotal(total)
				if target := m.docs.PageFor(line); target != pos.Current {
					pos = m.session.Reposition(target)
				}
				m.controller.SetPosition(pos.Current, pos.Total)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case turnIntentMsg:
		pos := m.session.Apply(msg.intent)
		m.controller.SetPosition(pos.Current, pos.Total)
		return m, m.waitForControllerMsg()

	case feedbackMsg:
		m.feedback = msg.feedback
		return m, m.waitForControllerMsg()

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("help pager failed")
			m.status = "help pager failed"
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes key input by view and mode
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.gotoMode {
		return m.handleGotoKey(msg)
	}

	switch m.mode {
	case viewLibrary:
		return m.handleLibraryKey(msg)
	case viewReader:
		return m.handleReaderKey(msg)
	}
	return m, nil
}

func (m *Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.library)-1 {
			m.selected++
		}
	case "enter":
		if m.selected >= 0 && m.selected < len(m.library) {
			m.openDocument(m.library[m.selected])
		}
	case "r":
		if !m.scanning {
			m.bus.Publish(eventbus.ScanRequestedEvent{Paths: []string{m.config.LibraryDir}})
		}
	case "?":
		return m, m.showHelp()
	}
	return m, nil
}

func (m *Model) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.closeDocument()
	case "ctrl+c":
		return m, tea.Quit
	case "right", "l", " ", "pgdown", "down", "j":
		m.controller.Turn(turn.DirectionForward)
	case "left", "h", "pgup", "up", "k":
		m.controller.Turn(turn.DirectionBackward)
	case "home":
		m.controller.RequestPage(1)
	case "end", "G":
		if _, total := m.controller.Position(); total > 0 {
			m.controller.RequestPage(total)
		}
	case "g":
		m.gotoMode = true
		m.gotoInput.Reset()
		m.gotoInput.Focus()
		return m, textinput.Blink
	case "t":
		m.tapZones = !m.tapZones
		if m.tapZones {
			m.status = "tap zones on"
		} else {
			m.status = "tap zones off"
		}
	case "?":
		return m, m.showHelp()
	}
	return m, nil
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if page, err := strconv.Atoi(m.gotoInput.Value()); err == nil {
			m.controller.RequestPage(page)
		}
		m.gotoMode = false
		m.gotoInput.Blur()
		return m, nil
	case "esc":
		m.gotoMode = false
		m.gotoInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// handleMouse feeds pointer input to the page-turn controller. Wheel
// notches go through the accumulator; press/release pairs become either
// a swipe or a tap-zone click.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != viewReader || m.gotoMode {
		return m, nil
	}
	ev := tea.MouseEvent(msg)

	switch ev.Button {
	case tea.MouseButtonWheelDown:
		m.controller.HandleWheel(turn.WheelEvent{
			DeltaY: wheelNotchDelta,
			Mode:   turn.DeltaModeLine,
			Time:   time.Now(),
		})
		return m, nil
	case tea.MouseButtonWheelUp:
		m.controller.HandleWheel(turn.WheelEvent{
			DeltaY: -wheelNotchDelta,
			Mode:   turn.DeltaModeLine,
			Time:   time.Now(),
		})
		return m, nil
	}

	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft {
			m.pressed = true
			m.pressX = ev.X
			m.controller.HandleTouchStart(float64(ev.X) * cellSwipeUnits)
		}
	case tea.MouseActionRelease:
		if !m.pressed {
			break
		}
		m.pressed = false
		m.controller.HandleTouchEnd(float64(ev.X) * cellSwipeUnits)

		// A release without qualifying travel is a tap.
		travel := ev.X - m.pressX
		if travel < 0 {
			travel = -travel
		}
		if m.tapZones && float64(travel)*cellSwipeUnits < m.controller.Config().SwipeThreshold {
			m.controller.HandleClick(ev.X, m.width)
		}
	}
	return m, nil
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.scanning = true
		m.status = "scanning library..."
		// A fresh scan rebuilds the list; stale entries would duplicate.
		m.library = m.library[:0]
		m.selected = 0

	case eventbus.ScanCompletedEvent:
		m.scanning = false
		m.status = fmt.Sprintf("%d documents", e.DocsFound)

	case eventbus.DocsDiscoveredBatchEvent:
		m.library = append(m.library, e.Docs...)
		sort.Slice(m.library, func(i, j int) bool {
			return m.library[i].DisplayName < m.library[j].DisplayName
		})
		if m.selected >= len(m.library) {
			m.selected = len(m.library) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}

	case eventbus.PaginatedEvent:
		if e.Path == m.session.Path() {
			pos := m.session.SetTotal(e.TotalPages)
			m.controller.SetPosition(pos.Current, pos.Total)
		}

	case eventbus.ErrorEvent:
		m.status = e.Message
	}
	return m, nil
}

// openDocument switches to the reader view with a fresh gesture state
func (m *Model) openDocument(doc domain.Document) {
	m.session.Open(doc.Path)
	m.controller.Reset()
	m.docs.Open(doc.Path, m.contentWidth(), m.contentHeight())
	m.mode = viewReader
	m.feedback = turn.Feedback{}
	m.status = ""
	m.log.Info().Str("path", doc.Path).Msg("opened document")
}

// closeDocument returns to the library view
func (m *Model) closeDocument() {
	m.session.Close()
	m.controller.Reset()
	m.mode = viewLibrary
	m.feedback = turn.Feedback{}
	m.gotoMode = false
	m.status = ""
}

// contentWidth is the page text width inside the chrome
func (m *Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// contentHeight is the page text height inside the chrome
func (m *Model) contentHeight() int {
	h := m.height - 5
	if h < 5 {
		h = 5
	}
	return h
}
