package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lumen/hero"
	"lumen/host"
	"lumen/internal/buildinfo"
)

var opts struct {
	width    int
	height   int
	primary  string
	accent   string
	seed     int64
	headless bool
	hz       int
	frames   uint64
	hud      bool
	debug    bool
}

var rootCmd = &cobra.Command{
	Use:           "lumen",
	Short:         "Decorative pointer-reactive 3D hero scene",
	Long:          "lumen renders a continuously animated 3D hero scene — a rotating cube with a wireframe outline and five orbiting spheres — that eases toward the pointer.",
	Version:       buildinfo.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.IntVar(&opts.width, "width", 960, "Window width in layout pixels.")
	f.IntVar(&opts.height, "height", 600, "Window height in layout pixels.")
	f.StringVar(&opts.primary, "primary", "", "Cube color as #RRGGBB (default pink).")
	f.StringVar(&opts.accent, "accent", "", "Outline/satellite color as #RRGGBB (default cyan).")
	f.Int64Var(&opts.seed, "seed", 0, "Satellite layout seed (0 = random).")
	f.BoolVar(&opts.headless, "headless", false, "Run without a window.")
	f.IntVar(&opts.hz, "hz", 60, "Frame rate in headless mode.")
	f.Uint64Var(&opts.frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	f.BoolVar(&opts.hud, "hud", false, "Overlay frame diagnostics.")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging.")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logCfg := zap.NewProductionConfig()
	if opts.debug {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	heroCfg, err := heroConfig()
	if err != nil {
		return err
	}

	if opts.headless {
		return runHeadless(logger, heroCfg)
	}

	return host.RunWindow(host.WindowConfig{
		Width:  opts.width,
		Height: opts.height,
		HUD:    opts.hud,
		Hero:   heroCfg,
		Logger: logger,
	})
}

func heroConfig() (hero.Config, error) {
	var cfg hero.Config
	var err error
	if cfg.Primary, err = parseColor(opts.primary, hero.DefaultPrimary); err != nil {
		return cfg, err
	}
	if cfg.Accent, err = parseColor(opts.accent, hero.DefaultAccent); err != nil {
		return cfg, err
	}
	if opts.seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(opts.seed))
	}
	return cfg, nil
}

func parseColor(s string, fallback uint32) (uint32, error) {
	if s == "" {
		return fallback, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}

func runHeadless(logger *zap.Logger, heroCfg hero.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	v, err := hero.Mount(host.FixedSurface{W: opts.width, H: opts.height, Scale: 1}, heroCfg)
	if err != nil {
		return err
	}
	defer v.Close()

	logger.Info("running headless",
		zap.Int("width", opts.width), zap.Int("height", opts.height),
		zap.Int("hz", opts.hz), zap.Uint64("frames", opts.frames))

	err = host.RunHeadless(ctx, v, host.HeadlessConfig{Hz: opts.hz, Frames: opts.frames})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
