// Command simulate steps the collage scene in a headless loop and reports
// step timing. It exercises the full pipeline (feed churn, assignment,
// patterns, smoothing, camera) without rendering, so the numbers isolate
// scene cost from raster cost. An optional snapshot renders the final frame.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"photo-collage-engine/internal/feed"
	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/render"
	"photo-collage-engine/internal/scene"
	"photo-collage-engine/internal/sequence"
	"photo-collage-engine/internal/settings"
	"photo-collage-engine/internal/stats"
)

func main() {
	photosDir := flag.String("photos", "", "Directory of photos (default: synthetic feed with churn)")
	settingsFile := flag.String("settings", "", "Collage settings JSON file")
	frames := flag.Int("frames", 600, "Number of scene steps")
	fps := flag.Float64("fps", 30, "Simulated frame rate")
	seed := flag.Int64("seed", 1, "Synthetic feed seed")
	interact := flag.Bool("interact", false, "Inject a scripted orbit/zoom/pan gesture cycle")
	watch := flag.Bool("watch", false, "Reload the settings file when it changes")
	snapshot := flag.String("snapshot", "", "Write the final frame to this WebP file")
	debug := flag.Bool("debug", false, "Verbose engine logging")

	flag.Parse()

	if *frames <= 0 || *fps <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -frames and -fps must be positive")
		os.Exit(1)
	}

	logger := newLogger(*debug)
	defer logger.Sync()

	raw := settings.Settings{}
	if *settingsFile != "" {
		var err error
		raw, err = settings.Load(*settingsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}
	}

	var (
		photos []photo.Photo
		sim    *feed.Simulator
	)
	start := time.Now()
	if *photosDir != "" {
		var err error
		photos, err = photo.ScanDir(*photosDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning photos: %v\n", err)
			os.Exit(1)
		}
	} else {
		sim = feed.New(feed.Config{Seed: *seed, Initial: 24, Start: start})
		photos = sim.Photos()
	}

	var sc *scene.Scene
	update := func(p settings.Partial) {
		raw = settings.Apply(raw, p)
		sc.ApplySettings(raw)
	}
	sc = scene.New(raw, update, nil, logger)
	defer sc.Dispose()

	var pending atomic.Pointer[settings.Settings]
	if *watch && *settingsFile != "" {
		w, err := settings.Watch(*settingsFile, logger, func(s settings.Settings) {
			pending.Store(&s)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching settings: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
	}

	fmt.Printf("photo-collage-engine step simulator\n")
	fmt.Printf("Frames: %d @ %.0f fps, Photos: %d, Interact: %v\n", *frames, *fps, len(photos), *interact)
	fmt.Println("------------------------------------------------------------")

	sequence.WaitForTextures(sc, photos, 5*time.Second)

	dt := 1.0 / *fps
	step := time.Duration(dt * float64(time.Second))
	collector := stats.NewCollector()
	var last *scene.Frame

	loopStart := time.Now()
	for i := 0; i < *frames; i++ {
		if s := pending.Swap(nil); s != nil {
			raw = *s
			sc.ApplySettings(raw)
		}
		if sim != nil {
			sim.Tick(start.Add(time.Duration(i) * step))
			photos = sim.Photos()
		}
		if *interact {
			script(sc, i)
		}

		t0 := time.Now()
		last = sc.Step(photos, dt)
		collector.Observe(time.Since(t0))
	}
	wall := time.Since(loopStart)

	occupied := 0
	for _, s := range last.Slots {
		if s.Photo != nil {
			occupied++
		}
	}

	fmt.Println("------------------------------------------------------------")
	s := collector.Summary()
	fmt.Printf("Stepped %d frames in %.2fs wall\n", s.Frames, wall.Seconds())
	fmt.Printf("Step mean %.3fms, p50 %.3fms, p95 %.3fms, max %.3fms\n",
		ms(s.Mean), ms(s.P50), ms(s.P95), ms(s.Max))
	fmt.Printf("Slots filled: %d/%d, Photos live: %d, Textures cached: %d\n",
		occupied, len(last.Slots), len(photos), sc.Textures().Len())

	if *snapshot != "" {
		if err := writeSnapshot(*snapshot, last); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot: %s\n", *snapshot)
	}
}

// script drives a deterministic gesture cycle: an orbit drag, then a
// zoom-and-pan, repeating every 300 frames. The gaps in between let the
// camera resume its autonomous mode after the interaction timeout.
func script(sc *scene.Scene, frame int) {
	c := sc.Controls()
	switch phase := frame % 300; {
	case phase == 60:
		c.Begin()
	case phase > 60 && phase < 100:
		c.Orbit(0.02, 0.004)
	case phase == 100:
		c.End()
	case phase == 180:
		c.Begin()
	case phase > 180 && phase < 200:
		c.Zoom(0.98)
		c.Pan(0.05, 0)
	case phase == 200:
		c.End()
	}
}

func writeSnapshot(path string, frame *scene.Frame) error {
	r := render.New(render.Config{Width: 960, Height: 540, Supersample: 2})
	img := r.Render(frame)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return nativewebp.Encode(f, img, nil)
}

func ms(d time.Duration) float64 {
	return d.Seconds() * 1000
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
