package engine

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/redactyl/piiguard/internal/cache"
	"github.com/redactyl/piiguard/internal/detectors"
	"github.com/redactyl/piiguard/internal/types"
)

// Config controls the scope and parallelism of a directory scan.
type Config struct {
	Root            string
	IncludeGlobs    string // comma-separated doublestar patterns
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	DefaultExcludes bool
	NoCache         bool
	Progress        func()
	Log             *zap.Logger
}

// Finding is an entity located in a file. Line and Column are 1-based;
// Column counts runes.
type Finding struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	types.Entity
}

// Result contains findings and scan statistics.
type Result struct {
	Findings     []Finding     `json:"findings"`
	FilesScanned int           `json:"files_scanned"`
	Duplicates   int           `json:"duplicates"`
	CacheHits    int           `json:"cache_hits"`
	Duration     time.Duration `json:"duration_ns"`
}

// Entities returns the entities of all findings in order.
func (r Result) Entities() []types.Entity {
	return lo.Map(r.Findings, func(f Finding, _ int) types.Entity { return f.Entity })
}

type alias struct {
	path, of string
}

// Scan walks cfg.Root and runs det over every eligible file. Files with
// identical content are scanned once. Findings are ordered by path, then offset.
func Scan(ctx context.Context, cfg Config, det *detectors.Detector) (Result, error) {
	var res Result
	if ctx == nil {
		ctx = context.Background()
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	started := time.Now()

	db := cache.DB{Entries: map[string]cache.Entry{}}
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root, det.Fingerprint())
	}

	var (
		mu      sync.Mutex
		byPath  = map[string][]Finding{}
		seen    = map[string]string{}
		aliases []alias
		dirty   bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(cfg.Threads))

	walkErr := Walk(gctx, cfg, func(path string, data []byte) {
		h := fastHash(data)
		mu.Lock()
		res.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
		if first, ok := seen[h]; ok {
			aliases = append(aliases, alias{path: path, of: first})
			res.Duplicates++
			mu.Unlock()
			return
		}
		seen[h] = path
		mu.Unlock()

		g.Go(func() error {
			mu.Lock()
			entities, hit := db.Lookup(path, h, data)
			mu.Unlock()
			if !hit {
				entities = det.Detect(string(data))
			}
			found := locate(path, data, entities)

			mu.Lock()
			defer mu.Unlock()
			byPath[path] = found
			if hit {
				res.CacheHits++
			} else if !cfg.NoCache {
				db.Put(path, h, entities)
				dirty = true
			}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return res, err
	}
	if walkErr != nil {
		return res, walkErr
	}

	for _, a := range aliases {
		byPath[a.path] = lo.Map(byPath[a.of], func(f Finding, _ int) Finding {
			f.Path = a.path
			return f
		})
	}
	paths := lo.Keys(byPath)
	sort.Strings(paths)
	for _, p := range paths {
		res.Findings = append(res.Findings, byPath[p]...)
	}
	res.Duration = time.Since(started)

	if dirty {
		if err := cache.Save(cfg.Root, db); err != nil {
			log.Debug("cache not saved", zap.Error(err))
		}
	}
	if ce := log.Check(zap.DebugLevel, "scan complete"); ce != nil {
		ce.Write(
			zap.String("root", cfg.Root),
			zap.Int("files", res.FilesScanned),
			zap.Int("duplicates", res.Duplicates),
			zap.Int("cache_hits", res.CacheHits),
			zap.Int("findings", len(res.Findings)),
			zap.Duration("duration", res.Duration),
		)
	}
	return res, nil
}

// locate attaches path, line and column to entities already sorted by start.
func locate(path string, data []byte, entities []types.Entity) []Finding {
	out := make([]Finding, 0, len(entities))
	line, lineStart, pos := 1, 0, 0
	for _, e := range entities {
		if e.Start < pos {
			line, lineStart, pos = 1, 0, 0
		}
		for {
			i := bytes.IndexByte(data[pos:e.Start], '\n')
			if i < 0 {
				break
			}
			line++
			pos += i + 1
			lineStart = pos
		}
		pos = e.Start
		out = append(out, Finding{
			Path:   path,
			Line:   line,
			Column: utf8.RuneCount(data[lineStart:e.Start]) + 1,
			Entity: e,
		})
	}
	return out
}

func workers(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	return min(max(threads, 1), 32)
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b))
}
