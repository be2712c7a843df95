package adr

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// DefaultWorkers is the parser pool size used when Load is given zero.
const DefaultWorkers = 8

// Load parses every markdown record in dir with a pool of workers and
// returns them sorted by number. Files that are not records are skipped.
// Records that fail to parse are reported in the joined error; the records
// that did parse are still returned.
func Load(ctx context.Context, dir string, workers int) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read record directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, nil
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}
	workers = min(workers, len(paths))

	parsed := csmap.Create[string, Record]()
	var (
		errsMu sync.Mutex
		errs   []error
	)

	workCh := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				rec, err := parseFile(path)
				switch {
				case errors.Is(err, ErrNotRecord):
				case err != nil:
					errsMu.Lock()
					errs = append(errs, err)
					errsMu.Unlock()
				default:
					parsed.Store(path, rec)
				}
			}
		}()
	}

	func() {
		defer close(workCh)
		for _, p := range paths {
			select {
			case workCh <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, parsed.Count())
	parsed.Range(func(_ string, rec Record) bool {
		records = append(records, rec)
		return false
	})
	slices.SortFunc(records, func(a, b Record) int {
		if c := cmp.Compare(a.Number, b.Number); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	linkBack(records)

	slices.SortFunc(errs, func(a, b error) int { return cmp.Compare(a.Error(), b.Error()) })
	return records, errors.Join(errs...)
}

func parseFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read record: %w", err)
	}
	return Parse(path, data)
}

// linkBack completes supersede links that were only recorded on one side.
func linkBack(records []Record) {
	index := make(map[int]int, len(records))
	for i, r := range records {
		if _, ok := index[r.Number]; !ok {
			index[r.Number] = i
		}
	}
	for i := range records {
		for _, n := range records[i].Supersedes {
			if j, ok := index[n]; ok && !slices.Contains(records[j].SupersededBy, records[i].Number) {
				records[j].SupersededBy = append(records[j].SupersededBy, records[i].Number)
			}
		}
		for _, n := range records[i].SupersededBy {
			if j, ok := index[n]; ok && !slices.Contains(records[j].Supersedes, records[i].Number) {
				records[j].Supersedes = append(records[j].Supersedes, records[i].Number)
			}
		}
	}
}
