package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"picdex/internal/catalog"
	"picdex/internal/classify"
	"picdex/internal/collect"
	"picdex/internal/config"
	"picdex/internal/faults"
	"picdex/internal/logging"
	"picdex/internal/tagset"
)

// Summary reports what one ingest run did. Skipped files are neither
// processed nor inserted; relocate failures leave the catalog consistent
// but the file un-relocated.
type Summary struct {
	RunID            string
	Processed        int
	Inserted         int
	Duplicates       int
	Skipped          int
	Relocated        int
	RelocateFailures int
}

// Pipeline walks directory roots, classifies every regular file, and
// updates the catalog: new content is inserted (and optionally relocated),
// previously seen content merges its path tags and counts a duplicate.
type Pipeline struct {
	store      *catalog.Store
	classifier *classify.Classifier
	collector  *collect.Store
	logger     *slog.Logger
	workers    int
}

// New constructs the pipeline. collector may be nil when relocation is
// disabled.
func New(cfg *config.Config, store *catalog.Store, classifier *classify.Classifier, collector *collect.Store, logger *slog.Logger) *Pipeline {
	workers := 1
	if cfg != nil && cfg.Scanner.Workers > 0 {
		workers = cfg.Scanner.Workers
	}
	return &Pipeline{
		store:      store,
		classifier: classifier,
		collector:  collector,
		logger:     logging.NewComponentLogger(logger, "ingest"),
		workers:    workers,
	}
}

// candidate is one discovered regular file together with its scan root.
type candidate struct {
	root string
	path string
}

// classified carries a worker's result to the single writer.
type classified struct {
	candidate
	result classify.Result
	name   string
	tags   []string
	err    error
}

// Ingest processes every regular file under the given roots. Classification
// fans out across workers (pure reads); all catalog writes happen here on
// the calling goroutine, preserving single-writer discipline. Per-file read
// failures are logged and skipped; store write failures abort the run.
func (p *Pipeline) Ingest(ctx context.Context, roots []string) (Summary, error) {
	started := time.Now()
	summary := Summary{RunID: uuid.NewString()}
	logger := p.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	logger.Info("starting ingest",
		logging.Int("roots", len(roots)),
		logging.Int("workers", p.workers),
		logging.Bool("collect", p.collector != nil),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan candidate)
	results := make(chan classified)

	go func() {
		defer close(jobs)
		p.discover(ctx, roots, jobs, logger)
	}()

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.classifyWorker(ctx, jobs, results)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var runErr error
	for item := range results {
		if runErr != nil {
			continue // drain after failure
		}
		if err := p.apply(ctx, item, &summary, logger); err != nil {
			runErr = err
			cancel()
		}
	}
	if runErr != nil {
		return summary, runErr
	}

	logger.Info("ingest completed",
		logging.Int("processed", summary.Processed),
		logging.Int("inserted", summary.Inserted),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("skipped", summary.Skipped),
		logging.Int("relocated", summary.Relocated),
		logging.Duration("elapsed", time.Since(started)),
	)
	return summary, nil
}

// discover walks each root and feeds regular files to the workers.
// Traversal order is whatever the filesystem reports; the catalog outcome
// does not depend on it. Roots are absolutized first: tokenization needs
// the root's own name as a path segment, which relative forms like "." or
// "sub/.." do not carry.
func (p *Pipeline) discover(ctx context.Context, roots []string, jobs chan<- candidate, logger *slog.Logger) {
	for _, root := range roots {
		root, err := filepath.Abs(root)
		if err != nil {
			logger.Warn("cannot resolve root, skipping", logging.String(logging.FieldPath, root), logging.Error(err))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, os.ErrNotExist) {
					// A missing root contributes nothing; it is not an error.
					logger.Warn("root does not exist, skipping", logging.String(logging.FieldPath, root))
					return fs.SkipAll
				}
				logger.Warn("cannot read directory entry, skipping",
					logging.String(logging.FieldPath, path), logging.Error(err))
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			select {
			case jobs <- candidate{root: root, path: path}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("walk aborted", logging.String(logging.FieldPath, root), logging.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (p *Pipeline) classifyWorker(ctx context.Context, jobs <-chan candidate, results chan<- classified) {
	for job := range jobs {
		item := classified{candidate: job}
		item.result, item.err = p.classifier.Classify(ctx, job.path)
		if item.err == nil {
			item.name, item.tags, item.err = tagset.Tokenize(job.root, job.path)
			if item.err != nil {
				item.err = faults.Wrap(faults.ErrFileRead, "ingest", "derive tags", job.path, item.err)
			}
		}
		select {
		case results <- item:
		case <-ctx.Done():
			return
		}
	}
}

// apply performs the store side of one file: resolve type, look up the
// dedup key, then insert or merge. Runs only on the Ingest goroutine.
func (p *Pipeline) apply(ctx context.Context, item classified, summary *Summary, logger *slog.Logger) error {
	if item.err != nil {
		if faults.IsFatal(item.err) {
			return item.err
		}
		logger.Warn("skipping file", logging.String(logging.FieldPath, item.path), logging.Error(item.err))
		summary.Skipped++
		return nil
	}

	typeID, err := p.store.ResolveType(ctx, item.result.TypeLabel)
	if err != nil {
		return faults.Wrap(faults.ErrStoreWrite, "ingest", "resolve type", item.result.TypeLabel, err)
	}

	existing, err := p.store.FindPicture(ctx, item.result.Hash, item.result.Size)
	if err != nil {
		return faults.Wrap(faults.ErrStoreWrite, "ingest", "find picture", item.path, err)
	}

	if existing != nil {
		if _, err := p.store.MergeTags(ctx, existing.ID, item.tags); err != nil {
			return faults.Wrap(faults.ErrStoreWrite, "ingest", "merge tags", item.path, err)
		}
		summary.Processed++
		summary.Duplicates++
		logger.Debug("duplicate content",
			logging.String(logging.FieldPath, item.path),
			logging.String("hash", item.result.Hash),
			logging.Int64("picture_id", existing.ID),
		)
		return nil
	}

	inserted, err := p.store.InsertPicture(ctx, catalog.NewPicture{
		Filename:    item.name,
		FirstPath:   item.path,
		TypeID:      typeID,
		Size:        item.result.Size,
		ContentHash: item.result.Hash,
		Tags:        item.tags,
	})
	if err != nil {
		// A conflict here means find-then-insert raced, which the
		// single-writer discipline rules out; treat it as a store failure.
		return faults.Wrap(faults.ErrStoreWrite, "ingest", "insert picture", item.path, err)
	}
	summary.Processed++
	summary.Inserted++
	logger.Debug("cataloged new content",
		logging.String(logging.FieldPath, item.path),
		logging.String("hash", item.result.Hash),
		logging.Int64("picture_id", inserted.ID),
	)

	if p.collector == nil {
		return nil
	}
	target, err := p.collector.Place(item.path, item.result.Hash, item.result.Size)
	if err != nil {
		// The catalog insert already committed; report and carry on.
		logger.Warn("relocation failed, catalog entry kept",
			logging.String(logging.FieldPath, item.path), logging.Error(err))
		summary.RelocateFailures++
		return nil
	}
	summary.Relocated++
	logger.Debug("relocated file",
		logging.String(logging.FieldPath, item.path),
		logging.String("target", target),
	)
	return nil
}
