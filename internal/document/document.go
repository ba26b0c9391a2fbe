// Package document loads text files and splits them into terminal-sized
// pages. It is the stand-in for a real rendering engine: the page-turn
// controller only ever sees its (currentPage, totalPages) output.
package document

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"folio/internal/eventbus"
)

// Service paginates one open document at a time
type Service interface {
	// Open loads and paginates path asynchronously. Until pagination
	// finishes TotalPages reports 0.
	Open(path string, width, height int)
	// Page returns the rendered text of a 1-based page number
	Page(n int) (string, bool)
	// TotalPages returns the page count, 0 while still paginating
	TotalPages() int
	// Repaginate re-splits the loaded document for a new viewport size
	Repaginate(width, height int)
	// PageStart returns the 0-based source line index of page n's
	// leading line, 0 when unknown
	PageStart(n int) int
	// PageFor returns the 1-based page whose content starts at or
	// spans the given source line
	PageFor(line int) int
}

// service is the concrete implementation
type service struct {
	bus eventbus.EventBus
	log zerolog.Logger

	mu     sync.Mutex
	path   string
	lines  []string // raw document lines, kept for repagination
	pages  []string
	starts []int // source line index of each page's leading line
	loaded bool
	gen    int // bumped per Open so a stale load cannot publish
}

// NewService creates a document service
func NewService(bus eventbus.EventBus, log zerolog.Logger) Service {
	return &service{bus: bus, log: log}
}

// Open loads and paginates the document in the background
func (s *service) Open(path string, width, height int) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.path = path
	s.lines = nil
	s.pages = nil
	s.starts = nil
	s.loaded = false
	s.mu.Unlock()

	go s.load(gen, path, width, height)
}

func (s *service) load(gen int, path string, width, height int) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("failed to read document")
		if s.bus != nil {
			s.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("could not open %s", path),
				Err:     err,
			})
		}
		return
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	pages, starts := paginate(lines, width, height)

	s.mu.Lock()
	if gen != s.gen {
		// A newer Open superseded this load.
		s.mu.Unlock()
		return
	}
	s.lines = lines
	s.pages = pages
	s.starts = starts
	s.loaded = true
	total := len(pages)
	bus := s.bus
	s.mu.Unlock()

	s.log.Info().Str("path", path).Int("pages", total).Msg("document paginated")
	if bus != nil {
		bus.Publish(eventbus.PaginatedEvent{Path: path, TotalPages: total})
	}
}

// Page returns a 1-based page, false when out of range or not yet loaded
func (s *service) Page(n int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || n < 1 || n > len(s.pages) {
		return "", false
	}
	return s.pages[n-1], true
}

// TotalPages returns 0 until pagination has finished
func (s *service) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return 0
	}
	return len(s.pages)
}

// Repaginate re-splits the current document for a new viewport
func (s *service) Repaginate(width, height int) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return
	}
	s.pages, s.starts = paginate(s.lines, width, height)
	total := len(s.pages)
	path := s.path
	bus := s.bus
	s.mu.Unlock()

	if bus != nil {
		bus.Publish(eventbus.PaginatedEvent{Path: path, TotalPages: total})
	}
}

// PageStart returns the source line index of page n's leading line.
// Source lines are stable across viewport sizes, so the value anchors
// the reading position through a repagination.
func (s *service) PageStart(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || n < 1 || n > len(s.starts) {
		return 0
	}
	return s.starts[n-1]
}

// PageFor returns the 1-based page that begins at or spans the given
// source line under the current pagination
func (s *service) PageFor(line int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || len(s.starts) == 0 {
		return 1
	}
	page := 1
	for i, start := range s.starts {
		if start > line {
			break
		}
		page = i + 1
	}
	return page
}

// paginate wraps lines to width and groups them into height-sized pages,
// returning the pages and each page's leading source line index. A
// document always has at least one page, possibly empty.
func paginate(lines []string, width, height int) ([]string, []int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	var wrapped []string
	var source []int
	for i, line := range lines {
		parts := wrapLine(line, width)
		wrapped = append(wrapped, parts...)
		for range parts {
			source = append(source, i)
		}
	}

	var pages []string
	var starts []int
	for start := 0; start < len(wrapped); start += height {
		end := start + height
		if end > len(wrapped) {
			end = len(wrapped)
		}
		pages = append(pages, strings.Join(wrapped[start:end], "\n"))
		starts = append(starts, source[start])
	}
	if len(pages) == 0 {
		pages = []string{""}
		starts = []int{0}
	}
	return pages, starts
}

// wrapLine hard-wraps a line at width runes, breaking at spaces where
// one exists inside the window
func wrapLine(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = runes[cut:]
	}
	out = append(out, string(runes))
	return out
}
