// Command patterns inspects a layout pattern without running the scene:
// it normalizes settings, generates slot targets at a point in time, and
// prints positions plus spacing diagnostics. A sweep mode samples the
// pattern over time to catch layouts that drift into overlap.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"photo-collage-engine/internal/mathx"
	"photo-collage-engine/internal/pattern"
	"photo-collage-engine/internal/settings"
)

func main() {
	settingsFile := flag.String("settings", "", "Collage settings JSON file")
	patternType := flag.String("type", "", "Pattern override: grid | float | wave | spiral")
	count := flag.Int("count", 0, "Photo count override")
	elapsed := flag.Float64("t", 0, "Animation time in seconds")
	sweep := flag.Int("sweep", 0, "Sample N quarter-second steps and report the worst spacing")
	debug := flag.Bool("debug", false, "Verbose engine logging")

	flag.Parse()

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
	if *patternType != "" {
		if raw.Pattern == nil {
			raw.Pattern = &settings.PatternSettings{}
		}
		raw.Pattern.Type = patternType
	}
	if *count > 0 {
		raw.PhotoCount = count
	}

	cfg := settings.Normalize(raw, logger)
	gen := pattern.FromSettings(cfg, logger)
	out := gen.Generate(*elapsed)

	bounds := mathx.EmptyBox3()
	for _, p := range out.Positions {
		bounds = bounds.ExpandByPoint(p)
	}

	fmt.Printf("Pattern: %s\n", gen.Name())
	fmt.Printf("Slots: %d, Billboard: %v, t=%.2fs\n", len(out.Positions), out.Billboard, *elapsed)
	fmt.Printf("Photo size: %.2f, spacing guarantee: %.2f\n",
		cfg.PhotoSize, pattern.Spacing(cfg.Pattern, cfg.PhotoSize))
	fmt.Printf("Min pairwise distance: %.3f\n", pattern.MinPairwiseDistance(out.Positions))
	c, s := bounds.Center(), bounds.Size()
	fmt.Printf("Bounds: center(%.2f, %.2f, %.2f) size(%.2f, %.2f, %.2f) radius %.2f\n",
		c.X(), c.Y(), c.Z(), s.X(), s.Y(), s.Z(), bounds.Radius())
	fmt.Println("------------------------------------------------------------")
	for i, p := range out.Positions {
		fmt.Printf("  slot %3d: pos(%8.3f, %8.3f, %8.3f)\n", i, p.X(), p.Y(), p.Z())
	}

	if *sweep > 0 {
		worst, worstAt := sweepSpacing(gen, *sweep)
		fmt.Println("------------------------------------------------------------")
		fmt.Printf("Sweep: %d samples, worst min distance %.3f at t=%.2fs\n", *sweep, worst, worstAt)
	}
}

// sweepSpacing samples the generator at quarter-second steps and returns the
// smallest pairwise distance seen and the time it occurred at.
func sweepSpacing(gen pattern.Generator, samples int) (worst, worstAt float64) {
	worst = pattern.MinPairwiseDistance(gen.Generate(0).Positions)
	for k := 1; k < samples; k++ {
		t := float64(k) * 0.25
		if d := pattern.MinPairwiseDistance(gen.Generate(t).Positions); d < worst {
			worst, worstAt = d, t
		}
	}
	return worst, worstAt
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
