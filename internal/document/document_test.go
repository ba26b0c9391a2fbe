package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	lines := []string{"one", "two", "three", "four", "five"}

	pages, starts := paginate(lines, 80, 2)
	require.Len(t, pages, 3)
	assert.Equal(t, "one\ntwo", pages[0])
	assert.Equal(t, "three\nfour", pages[1])
	assert.Equal(t, "five", pages[2])
	assert.Equal(t, []int{0, 2, 4}, starts)
}

func TestPaginateEmptyDocumentHasOnePage(t *testing.T) {
	pages, starts := paginate(nil, 80, 24)
	require.Len(t, pages, 1)
	assert.Equal(t, "", pages[0])
	assert.Equal(t, []int{0}, starts)
}

func TestPaginateStartsTrackSourceLinesThroughWrapping(t *testing.T) {
	// The second line wraps into three pieces at width 5, so page 2
	// starts mid-line and still reports source line 1.
	lines := []string{"aa", "bbbbbbbbbbbbbb", "cc"}

	pages, starts := paginate(lines, 5, 2)
	require.Len(t, pages, 3)
	assert.Equal(t, []int{0, 1, 2}, starts)
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"breaks at space", "hello brave world", 11, []string{"hello brave", "world"}},
		{"hard cut without spaces", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"exact width", "abcd", 4, []string{"abcd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLine(tt.line, tt.width))
		})
	}
}

func TestOpenReportsZeroTotalUntilLoaded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	content := strings.Repeat("line of prose\n", 100)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := NewService(nil, zerolog.Nop())
	svc.Open(path, 80, 10)

	// Pagination runs in the background; the total settles at 11 pages
	// (100 lines plus the trailing empty line, 10 per page).
	assert.Eventually(t, func() bool {
		return svc.TotalPages() == 11
	}, time.Second, 5*time.Millisecond)

	page, ok := svc.Page(1)
	require.True(t, ok)
	assert.Contains(t, page, "line of prose")

	_, ok = svc.Page(12)
	assert.False(t, ok, "out of range page must not resolve")
	_, ok = svc.Page(0)
	assert.False(t, ok)
}

func TestPageMappingSurvivesRepaginate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	var b strings.Builder
	for i := 1; i <= 100; i++ {
		b.WriteString("line\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))

	svc := NewService(nil, zerolog.Nop())
	svc.Open(path, 80, 20)
	require.Eventually(t, func() bool { return svc.TotalPages() > 0 }, time.Second, 5*time.Millisecond)

	// Page 2 leads with source line 20. After halving the page height
	// that line belongs to page 3.
	line := svc.PageStart(2)
	require.Equal(t, 20, line)

	svc.Repaginate(80, 10)
	assert.Equal(t, 3, svc.PageFor(line))
	assert.Equal(t, 20, svc.PageStart(3))

	// Out-of-range queries stay in bounds.
	assert.Equal(t, 0, svc.PageStart(0))
	assert.Equal(t, 0, svc.PageStart(999))
	assert.Equal(t, 1, svc.PageFor(-5))
	assert.Equal(t, svc.TotalPages(), svc.PageFor(10000))
}

func TestRepaginate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	content := strings.Repeat("x\n", 20)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := NewService(nil, zerolog.Nop())
	svc.Open(path, 80, 10)
	require.Eventually(t, func() bool { return svc.TotalPages() > 0 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 3, svc.TotalPages()) // 21 lines inc. trailing empty

	svc.Repaginate(80, 7)
	assert.Equal(t, 3, svc.TotalPages())

	svc.Repaginate(80, 5)
	assert.Equal(t, 5, svc.TotalPages())
}
