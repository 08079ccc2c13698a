package catalog

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/faizmokh/metastring/internal/files"
	"github.com/faizmokh/metastring/internal/logging"
	"github.com/faizmokh/metastring/internal/metastring"
)

const defaultWorkers = 8

// Record is the outcome of parsing one file name. Exactly one of Metadata and
// Err is set.
type Record struct {
	Name     string
	Metadata metastring.Metadata
	Warnings []metastring.Warning
	Err      error
}

// Valid reports whether the name parsed.
func (r Record) Valid() bool {
	return r.Err == nil
}

// Reader parses every matching file name in a directory.
type Reader struct {
	manager *files.Manager
	workers int
	logger  *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithWorkers bounds how many names are parsed concurrently.
func WithWorkers(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger that receives reserved-key warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReader wires a reader over the shared files.Manager.
func NewReader(manager *files.Manager, opts ...Option) *Reader {
	r := &Reader{
		manager: manager,
		workers: defaultWorkers,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dir returns the directory being read.
func (r *Reader) Dir() string {
	return r.manager.Dir()
}

// Read lists the files matching pattern and parses each name. Parse failures
// are stored on the record; only listing errors and cancellation fail Read.
// Records come back in listing order.
func (r *Reader) Read(ctx context.Context, pattern string) ([]Record, error) {
	if r == nil || r.manager == nil {
		return nil, errors.New("reader not initialized with file manager")
	}

	names, err := r.manager.List(ctx, pattern)
	if err != nil {
		return nil, err
	}

	records := make([]Record, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = ParseName(gctx, r.logger, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// ParseName parses a single name into a Record, logging reserved-key
// overwrites at WARN and failures at DEBUG.
func ParseName(ctx context.Context, logger *slog.Logger, name string) Record {
	if logger == nil {
		logger = logging.Discard()
	}
	rec := Record{Name: name}
	md, err := metastring.Parse(name, metastring.WithWarningHandler(func(w metastring.Warning) {
		rec.Warnings = append(rec.Warnings, w)
		logger.WarnContext(ctx, "reserved key overwritten",
			slog.String("file", name),
			slog.String("key", w.Key),
			slog.String("previous", w.Previous),
			slog.String("value", w.Value),
		)
	}))
	if err != nil {
		logger.DebugContext(ctx, "invalid file name", slog.String("file", name), slog.Any("error", err))
		rec.Err = err
		return rec
	}
	rec.Metadata = md
	return rec
}

// Summary counts records by outcome.
type Summary struct {
	Total   int
	Valid   int
	Invalid int
	Warned  int
}

// Summarize tallies records.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, rec := range records {
		if rec.Valid() {
			s.Valid++
		} else {
			s.Invalid++
		}
		if len(rec.Warnings) > 0 {
			s.Warned++
		}
	}
	return s
}

// Keys returns the union of field names across valid records, sorted, with
// reserved keys first in rstr, date, time order.
func Keys(records []Record) []string {
	seen := make(map[string]struct{})
	var fields []string
	reserved := [3]bool{}
	for _, rec := range records {
		for k := range rec.Metadata {
			switch k {
			case metastring.KeyRaw:
				reserved[0] = true
				continue
			case metastring.KeyDate:
				reserved[1] = true
				continue
			case metastring.KeyTime:
				reserved[2] = true
				continue
			}
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				fields = append(fields, k)
			}
		}
	}
	slices.Sort(fields)

	var keys []string
	for i, k := range []string{metastring.KeyRaw, metastring.KeyDate, metastring.KeyTime} {
		if reserved[i] {
			keys = append(keys, k)
		}
	}
	return append(keys, fields...)
}

// Invalid returns only the records that failed to parse.
func Invalid(records []Record) []Record {
	var out []Record
	for _, rec := range records {
		if !rec.Valid() {
			out = append(out, rec)
		}
	}
	return out
}
