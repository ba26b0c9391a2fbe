package reader

import "folio/internal/turn"

// Position is the reader's place inside a document. Current is 1-based;
// Total of 0 means the page count is unknown (pagination still running).
type Position struct {
	Current int
	Total   int
}

// Clamp bounds a page number against the position's limits. With an
// unknown total only the lower bound applies.
func (p Position) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if p.Total > 0 && page > p.Total {
		return p.Total
	}
	return page
}

// Apply resolves a page-turn intent into the next position. Out-of-range
// targets are clamped, never rejected.
func (p Position) Apply(intent turn.Intent) Position {
	p.Current = p.Clamp(intent.TargetPage)
	return p
}

// Forward returns the position one page ahead, clamped. Unknown totals
// optimistically advance.
func (p Position) Forward() Position {
	if p.Total == 0 || p.Current < p.Total {
		p.Current++
	}
	return p
}

// Backward returns the position one page back, clamped at 1
func (p Position) Backward() Position {
	if p.Current > 1 {
		p.Current--
	}
	return p
}

// AtStart reports whether the reader is on the first page
func (p Position) AtStart() bool { return p.Current <= 1 }

// AtEnd reports whether the reader is on the last known page
func (p Position) AtEnd() bool { return p.Total > 0 && p.Current >= p.Total }
