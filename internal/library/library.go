// Package library finds readable documents on disk and announces them
// on the event bus.
package library

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"folio/internal/domain"
	"folio/internal/eventbus"
)

// metadataWorkers bounds the concurrent per-file metadata reads
const metadataWorkers = 8

// LibraryService scans the filesystem for readable documents
type LibraryService interface {
	StartScan(ctx context.Context, roots []string) error
	StopScan()
	// Related returns up to limit documents ranked by content
	// similarity to the document at path, best first.
	Related(path string, limit int) []domain.Document
}

// libraryService is the concrete implementation
type libraryService struct {
	bus        eventbus.EventBus
	log        zerolog.Logger
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	// Content index built during scans, consulted by Related. Vectors
	// are computed once per scan from the same read as the metadata.
	docs    map[string]domain.Document
	vectors map[string]termVector
}

// NewLibraryService creates a new library service
func NewLibraryService(bus eventbus.EventBus, log zerolog.Logger) LibraryService {
	ls := &libraryService{
		bus:     bus,
		log:     log,
		docs:    make(map[string]domain.Document),
		vectors: make(map[string]termVector),
	}

	// Subscribe to scan requests
	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanRequestedEvent); ok {
			go ls.StartScan(context.Background(), event.Paths)
		}
	})

	return ls
}

// StartScan starts scanning for documents under the given roots
func (ls *libraryService) StartScan(ctx context.Context, roots []string) error {
	ls.mu.Lock()
	if ls.isScanning {
		ls.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	ls.isScanning = true
	ls.docs = make(map[string]domain.Document)
	ls.vectors = make(map[string]termVector)

	scanCtx, cancel := context.WithCancel(ctx)
	ls.cancelFunc = cancel
	ls.mu.Unlock()

	ls.bus.Publish(eventbus.ScanStartedEvent{Paths: roots})

	docsFound := 0

	ls.wg.Add(1)
	go func() {
		defer ls.wg.Done()
		defer func() {
			ls.mu.Lock()
			ls.isScanning = false
			ls.cancelFunc = nil
			ls.mu.Unlock()

			ls.bus.Publish(eventbus.ScanCompletedEvent{DocsFound: docsFound})
		}()

		for _, root := range roots {
			select {
			case <-scanCtx.Done():
				return
			default:
				count := ls.scanDirectory(scanCtx, root)
				docsFound += count
			}
		}
	}()

	return nil
}

// StopScan stops any ongoing scan
func (ls *libraryService) StopScan() {
	ls.mu.Lock()
	if ls.cancelFunc != nil {
		ls.cancelFunc()
	}
	ls.mu.Unlock()
	ls.wg.Wait()
}

// scanDirectory walks root, reads metadata for every candidate file and
// publishes the hits in one batch per root
func (ls *libraryService) scanDirectory(ctx context.Context, root string) int {
	var candidates []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			ls.log.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			// Don't descend into hidden directories
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if formatOf(path) != "" {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil && err != context.Canceled {
		ls.log.Warn().Err(err).Str("root", root).Msg("scan aborted")
	}

	if len(candidates) == 0 {
		return 0
	}

	// Metadata reads hit the disk per file, so they fan out with a
	// bounded worker group.
	docs := make([]domain.Document, len(candidates))
	vectors := make([]termVector, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metadataWorkers)
	for i, path := range candidates {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			doc, vec, err := describe(path)
			if err != nil {
				ls.log.Debug().Err(err).Str("path", path).Msg("skipping document")
				return nil
			}
			docs[i] = doc
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0
	}

	found := docs[:0]
	ls.mu.Lock()
	for i, doc := range docs {
		if doc.Path != "" {
			found = append(found, doc)
			ls.docs[doc.Path] = doc
			ls.vectors[doc.Path] = vectors[i]
		}
	}
	ls.mu.Unlock()
	if len(found) == 0 {
		return 0
	}

	ls.bus.Publish(eventbus.DocsDiscoveredBatchEvent{Docs: found})
	return len(found)
}

// Related returns up to limit documents ranked by content similarity to
// the document at path. An unknown path or a mid-scan index yields nil.
func (ls *libraryService) Related(path string, limit int) []domain.Document {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	query, ok := ls.vectors[path]
	if !ok {
		return nil
	}
	candidates := make(map[string]termVector, len(ls.vectors))
	for p, v := range ls.vectors {
		if p != path {
			candidates[p] = v
		}
	}

	var out []domain.Document
	for _, p := range rankBySimilarity(query, candidates, limit) {
		out = append(out, ls.docs[p])
	}
	return out
}

// describe builds the Document metadata and content vector for a
// candidate path, from a single read
func describe(path string) (domain.Document, termVector, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Document{}, nil, fmt.Errorf("failed to stat document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, nil, fmt.Errorf("failed to read document: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return domain.Document{
		Path:        path,
		Name:        name,
		DisplayName: name,
		Format:      formatOf(path),
		SizeBytes:   info.Size(),
		LineCount:   bytes.Count(data, []byte("\n")) + 1,
	}, vectorize(string(data)), nil
}

// formatOf maps a file extension to a supported format, "" if unsupported
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return "txt"
	case ".md":
		return "md"
	default:
		return ""
	}
}
