package classifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"classifyd/internal/imageproc"
	"classifyd/pkg/types"
)

type Classifier struct {
	// mu guards model and loadErr. Classify holds the read lock across the
	// forward pass so Close never releases a model that is still running.
	mu sync.RWMutex
	// model is nil when loading failed; loadErr then holds the cause.
	model   Model
	loadErr error

	modelPath string
	info      types.ModelInfo
	labels    []string
	size      int
	maxPixels int64
	interp    resize.InterpolationFunction

	log       zerolog.Logger
	publisher EventPublisher
	startTime time.Time

	classified atomic.Uint64
	failed     atomic.Uint64
}

// New loads the model and returns a classifier. It never fails: a load error
// is logged, published as a load_failed event and kept for Status, and the
// returned classifier rejects every Classify call.
func New(cfg Config) *Classifier {
	cfg.applyDefaults()
	c := &Classifier{
		modelPath: cfg.ModelPath,
		info:      types.ModelInfo{Path: cfg.ModelPath},
		labels:    append([]string(nil), cfg.Labels...),
		size:      cfg.ImageSize,
		maxPixels: cfg.MaxPixels,
		log:       cfg.Logger,
		publisher: cfg.Publisher,
		startTime: time.Now(),
	}
	interp, err := imageproc.ParseResample(cfg.Resample)
	if err != nil {
		c.fail(err)
		return c
	}
	c.interp = interp

	start := time.Now()
	model, err := c.load(cfg.Loader)
	if err != nil {
		c.fail(err)
		return c
	}
	c.model = model
	c.info = model.Info()
	c.log.Info().Str("model", c.info.Path).Strs("labels", c.labels).Int("image_size", c.size).
		Dur("dur", time.Since(start)).Msg("model loaded")
	c.publisher.Publish(Event{Name: "load_ok", Fields: map[string]any{"path": c.info.Path, "dur_ms": int(time.Since(start) / time.Millisecond)}})
	return c
}

func (c *Classifier) load(loader Loader) (Model, error) {
	if loader == nil {
		return nil, errors.New("no model runtime configured")
	}
	if c.modelPath == "" {
		return nil, errors.New("model path is empty")
	}
	model, err := loader.Load(c.modelPath, imageproc.InputShape(c.size))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.modelPath, err)
	}
	// The label set must line up with the model output; check once here
	// rather than discovering it on every request.
	if w := model.Info().OutputWidth; w > 0 && w != len(c.labels) {
		_ = model.Close()
		return nil, outputMismatchError{got: w, want: len(c.labels)}
	}
	return model, nil
}

func (c *Classifier) fail(err error) {
	c.loadErr = err
	c.log.Error().Err(err).Str("model", c.modelPath).Msg("model load failed; classifier is inert")
	c.publisher.Publish(Event{Name: "load_failed", Fields: map[string]any{"path": c.modelPath, "error": err.Error()}})
}

// Ready reports whether a model is loaded.
func (c *Classifier) Ready() bool {
	model, _ := c.current()
	return model != nil
}

// current returns the model, or nil and the reason it is absent.
func (c *Classifier) current() (Model, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model, c.loadErr
}

// Labels returns a copy of the label set in model output order.
func (c *Classifier) Labels() []string { return slices.Clone(c.labels) }

// Classify decodes r, shapes it into the model input and returns the most
// probable class. ctx is only checked before the forward pass starts; the
// pass itself runs to completion.
func (c *Classifier) Classify(ctx context.Context, r io.Reader) (Prediction, error) {
	p, err := c.classify(ctx, r)
	if err != nil {
		c.failed.Add(1)
		return Prediction{}, err
	}
	c.classified.Add(1)
	c.log.Debug().Str("label", p.Label).Float32("confidence", p.Probability).Msg("prediction")
	return p, nil
}

func (c *Classifier) classify(ctx context.Context, r io.Reader) (Prediction, error) {
	img, _, err := imageproc.DecodeLimited(r, c.maxPixels)
	if err != nil {
		return Prediction{}, err
	}
	tensor, err := imageproc.ToTensor(img, c.size, c.interp)
	if err != nil {
		return Prediction{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.model == nil {
		return Prediction{}, ErrModelUnavailable(c.loadErr)
	}
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	probs, err := c.model.Predict(ctx, tensor)
	if err != nil {
		return Prediction{}, inferenceError{err: err}
	}
	return selectLabel(probs, c.labels)
}

// Close releases the model once in-flight forward passes have finished.
// Later Classify calls fail with a model-unavailable error.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model == nil {
		return nil
	}
	err := c.model.Close()
	c.model = nil
	if c.loadErr == nil {
		c.loadErr = errors.New("classifier closed")
	}
	return err
}
