package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"photo-collage-engine/internal/config"
	"photo-collage-engine/internal/feed"
	"photo-collage-engine/internal/photo"
	"photo-collage-engine/internal/render"
	"photo-collage-engine/internal/scene"
	"photo-collage-engine/internal/sequence"
	"photo-collage-engine/internal/settings"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	photosDir := flag.String("photos", "", "Directory of photos to collage (default: synthetic feed)")
	settingsFile := flag.String("settings", "", "Collage settings JSON file (default: built-in defaults)")
	outDir := flag.String("out", "", "Output directory for frames (default: frames)")
	frames := flag.Int("frames", 0, "Number of frames to export (default: 300)")
	fps := flag.Float64("fps", 0, "Simulated frame rate (default: 30)")
	width := flag.Int("width", 0, "Output width in pixels (default: 1280)")
	height := flag.Int("height", 0, "Output height in pixels (default: 720)")
	supersample := flag.Int("supersample", 0, "Supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Render worker goroutines (default: NumCPU)")
	seed := flag.Int64("seed", 0, "Synthetic feed seed")
	watch := flag.Bool("watch", false, "Reload the settings file when it changes during export")
	debug := flag.Bool("debug", false, "Verbose engine logging")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		PhotosDir:    *photosDir,
		SettingsFile: *settingsFile,
		OutDir:       *outDir,
		Width:        *width,
		Height:       *height,
		Supersample:  *supersample,
		Workers:      *workers,
		Frames:       *frames,
		FPS:          *fps,
		Seed:         *seed,
	})

	logger := newLogger(*debug)
	defer logger.Sync()

	// Collage settings (the look); separate from the tool config.
	raw := settings.Settings{}
	if cfg.SettingsFile != "" {
		var err error
		raw, err = settings.Load(cfg.SettingsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}
	}

	// Photo source: a real directory, or the synthetic feed.
	var photos []photo.Photo
	if cfg.PhotosDir != "" {
		var err error
		photos, err = photo.ScanDir(cfg.PhotosDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning photos: %v\n", err)
			os.Exit(1)
		}
		if len(photos) == 0 {
			fmt.Printf("No photos in %s; rendering placeholders.\n", cfg.PhotosDir)
		}
	} else {
		photos = feed.New(feed.Config{Seed: cfg.Seed, Initial: 24}).Photos()
	}

	// The scene proposes settings changes (grid photo count); apply them and
	// feed the merged settings back in.
	var sc *scene.Scene
	update := func(p settings.Partial) {
		raw = settings.Apply(raw, p)
		sc.ApplySettings(raw)
	}
	sc = scene.New(raw, update, nil, logger)
	defer sc.Dispose()

	// Reloaded settings land on the watcher goroutine; park them and apply
	// between frames on the stepping goroutine.
	var pending atomic.Pointer[settings.Settings]
	var beforeFrame func(int)
	if *watch && cfg.SettingsFile != "" {
		w, err := settings.Watch(cfg.SettingsFile, logger, func(s settings.Settings) {
			pending.Store(&s)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error watching settings: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
		beforeFrame = func(int) {
			if s := pending.Swap(nil); s != nil {
				raw = *s
				sc.ApplySettings(raw)
			}
		}
	}

	fmt.Printf("photo-collage-engine frame exporter\n")
	fmt.Printf("Photos: %d, Frames: %d @ %.0f fps, %dx%d (x%d), Workers: %d\n",
		len(photos), cfg.Frames, cfg.FPS, cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutDir)
	fmt.Println("------------------------------------------------------------")

	sequence.WaitForTextures(sc, photos, 10*time.Second)

	start := time.Now()
	results, err := sequence.Run(sequence.Config{
		OutDir:      cfg.OutDir,
		Render:      render.Config{Width: cfg.Width, Height: cfg.Height, Supersample: cfg.Supersample},
		FPS:         cfg.FPS,
		Frames:      cfg.Frames,
		Workers:     cfg.Workers,
		Logger:      logger,
		BeforeFrame: beforeFrame,
	}, sc, photos)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if failed <= 20 {
				fmt.Printf("  frame %d: %v\n", r.Frame, r.Err)
			}
		}
	}
	fmt.Printf("Exported: %d/%d\n", len(results)-failed, len(results))

	if failed > 0 {
		os.Exit(1)
	}
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
