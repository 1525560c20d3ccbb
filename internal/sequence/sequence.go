// Package sequence exports a scene as a numbered WebP frame sequence. The
// scene steps serially (it is single-threaded by contract); rasterizing and
// encoding the resulting snapshots run on a worker pool.
package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/render"
	"photo-collage-engine/internal/scene"
)

// Config holds the shared resources for one export run.
type Config struct {
	OutDir  string
	Render  render.Config
	FPS     float64 // simulated frame rate; dt = 1/FPS
	Frames  int
	Workers int
	Logger  *zap.Logger

	// BeforeFrame, when set, runs on the stepping goroutine right before
	// each scene step. Hosts use it to apply reloaded settings or inject
	// churn between frames.
	BeforeFrame func(frame int)
}

// Result holds the outcome of exporting one frame.
type Result struct {
	Frame int
	Path  string
	Err   error
}

// Run steps the scene Frames times at a fixed dt and writes each frame as
// frame_%05d.webp under OutDir. Frame snapshots are immutable and the
// texture cache is safe for concurrent reads, so rendering overlaps with
// stepping.
func Run(cfg Config, sc *scene.Scene, photos []photo.Photo) ([]Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if cfg.Frames <= 0 {
		return nil, nil
	}
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("sequence: output dir: %w", err)
	}

	total := cfg.Frames
	results := make([]Result, total)
	var exported atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				n := exported.Load()
				if n > 0 {
					rate := float64(n) / time.Since(start).Seconds()
					logger.Info("sequence: progress",
						zap.Int64("exported", n),
						zap.Int("total", total),
						zap.Float64("framesPerSec", rate))
				}
			}
		}
	}()

	type job struct {
		idx   int
		frame *scene.Frame
	}

	// Bounded so the scene never runs far ahead of the encoders.
	jobs := make(chan job, cfg.Workers)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := render.New(cfg.Render)
			for j := range jobs {
				results[j.idx] = exportFrame(cfg.OutDir, r, j.idx, j.frame)
				exported.Add(1)
			}
		}()
	}

	dt := 1.0 / cfg.FPS
	for i := 0; i < total; i++ {
		if cfg.BeforeFrame != nil {
			cfg.BeforeFrame(i)
		}
		jobs <- job{idx: i, frame: sc.Step(photos, dt)}
	}
	close(jobs)
	wg.Wait()
	close(done)

	logger.Info("sequence: done",
		zap.Int("frames", total),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

// WaitForTextures steps the scene with dt=0 until pending photo loads have
// drained or the timeout expires, so the first exported frame shows photos
// instead of placeholders. Zero dt keeps patterns and camera where they are.
func WaitForTextures(sc *scene.Scene, photos []photo.Photo, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for {
		sc.Step(photos, 0)
		if sc.Textures().InflightCount() == 0 || time.Now().After(deadline) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func exportFrame(outDir string, r *render.Renderer, idx int, frame *scene.Frame) Result {
	path := filepath.Join(outDir, fmt.Sprintf("frame_%05d.webp", idx))

	img := r.Render(frame)

	f, err := os.Create(path)
	if err != nil {
		return Result{Frame: idx, Path: path, Err: err}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Frame: idx, Path: path, Err: fmt.Errorf("sequence: encode frame %d: %w", idx, err)}
	}
	return Result{Frame: idx, Path: path}
}
