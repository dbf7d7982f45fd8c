package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"swatch/internal/colour"
	"swatch/internal/frames"
	"swatch/internal/image"
)

// Options configures a batch run. The struct is immutable once handed
// to New; the orchestrator never mutates it.
type Options struct {
	// ImagesDir is the directory to scan for candidate images.
	ImagesDir string

	// StagingRoot is where the run-scoped staging directory is created.
	StagingRoot string

	// PaletteSize is the maximum number of colours per palette.
	PaletteSize int

	// MaxFrames caps how many frames are sampled per animation (0 = all).
	MaxFrames int

	// Concurrency bounds how many extraction units run at once.
	Concurrency int

	// OnItemDone, when set, is called after each image completes with
	// the running completion count. Called from the completing task's
	// goroutine, serialized by the orchestrator.
	OnItemDone func(done, total int, res PaletteResult)
}

// Orchestrator composes discovery, frame sampling, compositing and
// dispatch into one batch run, collecting per-image outcomes without
// ever aborting the batch on a single item's failure.
type Orchestrator struct {
	opts       Options
	unit       *ExtractionUnit
	dispatcher *Dispatcher
	logger     hclog.Logger
}

// New creates an Orchestrator using the given quantization capability.
func New(opts Options, extractor colour.Extractor, logger hclog.Logger) (*Orchestrator, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	dispatcher, err := NewDispatcher(opts.Concurrency, logger.Named("dispatch"))
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		opts:       opts,
		unit:       NewExtractionUnit(extractor, opts.PaletteSize, logger.Named("extract")),
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Run processes every candidate image in the configured directory and
// returns one PaletteResult per attempted image, ordered by discovery
// order. Only discovery failure is fatal; per-image failures are
// captured in the result list. All transient staging storage is removed
// before Run returns.
func (o *Orchestrator) Run() ([]PaletteResult, error) {
	started := time.Now()

	candidates, err := image.ScanDirectoryForImages(o.opts.ImagesDir)
	if err != nil {
		return nil, fmt.Errorf("input discovery failed: %w", err)
	}

	// Guard against duplicate candidates: each source is processed
	// exactly once however many times enumeration surfaces it.
	seen := make(map[string]bool, len(candidates))
	sources := make([]string, 0, len(candidates))
	for _, path := range candidates {
		if seen[path] {
			continue
		}
		seen[path] = true
		sources = append(sources, path)
	}

	if len(sources) == 0 {
		o.logger.Warn("no images found", "dir", o.opts.ImagesDir)
		return []PaletteResult{}, nil
	}

	stagingDir, err := o.createStagingDir()
	if err != nil {
		// Transient storage is best-effort: animated inputs fall back to
		// in-memory compositing.
		o.logger.Warn("failed to create staging directory", "error", err)
		stagingDir = ""
	}
	defer o.removeStagingDir(stagingDir)

	sampler := frames.NewSampler(stagingDir, o.opts.MaxFrames, o.logger.Named("sampler"))

	order := make(map[string]int, len(sources))
	for i, path := range sources {
		order[path] = i
	}

	var (
		mu      sync.Mutex
		results = make([]PaletteResult, 0, len(sources))
		done    int
	)

	tasks := make([]Task, 0, len(sources))
	for _, path := range sources {
		path := path
		tasks = append(tasks, func() {
			res := o.processOne(sampler, stagingDir, path)

			mu.Lock()
			results = append(results, res)
			done++
			completed := done
			if o.opts.OnItemDone != nil {
				o.opts.OnItemDone(completed, len(sources), res)
			}
			mu.Unlock()
		})
	}

	o.logger.Info("starting batch", "images", len(sources), "concurrency", o.opts.Concurrency)
	o.dispatcher.Run(tasks)

	// Completion order is scheduler-dependent; restore discovery order
	// before handing the report downstream.
	sort.Slice(results, func(i, j int) bool {
		return order[results[i].Path] < order[results[j].Path]
	})

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	o.logger.Info("batch complete", "images", len(results), "failed", failed, "elapsed", time.Since(started).Round(time.Millisecond))

	return results, nil
}

// processOne runs one image end to end: animated inputs are reduced to
// a staged synthetic still first, stills go straight to the extraction
// unit. Any fault is captured as a structured outcome.
func (o *Orchestrator) processOne(sampler *frames.Sampler, stagingDir, path string) (res PaletteResult) {
	name := displayName(path)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("image task panicked", "image", name, "panic", fmt.Sprint(r))
			res = failure(name, path, ErrKindExtractionFailure, fmt.Sprintf("panic while processing: %v", r))
		}
	}()

	if !image.IsAnimated(path) {
		return o.unit.ExtractFile(name, path)
	}

	sampled, err := sampler.Sample(path)
	if err != nil {
		if errors.Is(err, frames.ErrEmptyAnimation) {
			return failure(name, path, ErrKindEmptyAnimation, err.Error())
		}
		return failure(name, path, ErrKindDecodeFailure, err.Error())
	}
	defer sampled.Cleanup()

	composite, err := frames.Composite(sampled.Frames)
	if err != nil {
		var dims *frames.InconsistentDimensionsError
		if errors.As(err, &dims) {
			return failure(name, path, ErrKindInconsistentDimensions, err.Error())
		}
		return failure(name, path, ErrKindExtractionFailure, err.Error())
	}

	if stagingDir == "" {
		return o.unit.ExtractImage(name, path, composite)
	}

	staged, err := frames.StageComposite(stagingDir, path, composite)
	if err != nil {
		o.logger.Warn("failed to stage composite, extracting in memory", "image", name, "error", err)
		return o.unit.ExtractImage(name, path, composite)
	}
	defer func() {
		if err := frames.RemoveArtifact(staged); err != nil {
			o.logger.Warn("composite cleanup failed", "image", name, "error", err)
		}
	}()

	res = o.unit.ExtractFile(name, staged)
	// The staged composite is an internal detail; report the source.
	res.Path = path
	return res
}

// createStagingDir makes a run-scoped staging directory so concurrent
// runs over the same tree never clobber each other's artifacts.
func (o *Orchestrator) createStagingDir() (string, error) {
	dir := filepath.Join(o.opts.StagingRoot, ".swatch-staging-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (o *Orchestrator) removeStagingDir(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		o.logger.Warn("failed to remove staging directory", "dir", dir, "error", err)
	}
}
