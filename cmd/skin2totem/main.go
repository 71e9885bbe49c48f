// Command skin2totem converts 64×64 skins into 16×16 totem textures.
//
//	skin2totem [flags] skin.png...
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ClintFlames/mctools"
	"github.com/ClintFlames/mctools/codec"
	"github.com/ClintFlames/mctools/totem"
	"github.com/ClintFlames/mctools/utils"
)

type config struct {
	out         string
	secondLayer bool
	jobs        int
	preview     int
	background  mctools.Color
	paletteSize int
	method      utils.PaletteMethod
	stats       bool
}

// job is one skin to convert.
type job struct {
	skin  string
	totem string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.out, "o", "", "output file (single input only; default <skin>_totem.png)")
	flag.BoolVar(&cfg.secondLayer, "second-layer", totem.DefaultOptions().SecondLayer, "draw hat, sleeves, jacket and trousers")
	flag.IntVar(&cfg.jobs, "j", 1, "number of skins converted in parallel")
	flag.IntVar(&cfg.preview, "preview", 0, "also write <totem>_preview.png upscaled by this factor")
	background := flag.String("background", "", "preview background as #rrggbb[aa] (default transparent)")
	flag.IntVar(&cfg.paletteSize, "palette", 0, "also write <totem>_palette.png with this many colors")
	method := flag.String("method", utils.PaletteMethodDominantColor.String(), "palette method: dominantcolor or kmeans")
	flag.BoolVar(&cfg.stats, "stats", false, "log coverage and color statistics of each totem")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] skin.png...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	var err error
	var l *zap.Logger
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	var ok bool
	if cfg.method, ok = utils.ParsePaletteMethod(*method); !ok {
		l.Fatal("unknown palette method", zap.String("method", *method))
	}
	if *background != "" {
		if cfg.background, err = mctools.ParseColor(*background); err != nil {
			l.Fatal("bad -background", zap.Error(err))
		}
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.out != "" && flag.NArg() > 1 {
		l.Fatal("-o needs exactly one input", zap.Int("inputs", flag.NArg()))
	}

	jobs := make([]job, 0, flag.NArg())
	for _, skin := range flag.Args() {
		out := cfg.out
		if out == "" {
			out = derivePath(skin, "_totem")
		}
		jobs = append(jobs, job{skin: skin, totem: out})
	}

	start := time.Now()
	err = runAll(l, cfg, jobs)
	failed := len(multierr.Errors(err))
	l.Info("done",
		zap.Int("converted", len(jobs)-failed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	if err != nil {
		l.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

// derivePath turns "dir/steve.png" into "dir/steve<suffix>.png".
func derivePath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ".png"
}

// runAll converts every job, at most cfg.jobs at a time. Each conversion uses
// its own canvases and fails on its own; all failures are returned together.
func runAll(l *zap.Logger, cfg config, jobs []job) error {
	var (
		mu   sync.Mutex
		errs error
		wg   sync.WaitGroup
	)
	sem := make(chan struct{}, max(cfg.jobs, 1))
	for _, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := run(l, cfg, j); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", j.skin, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errs
}

func run(l *zap.Logger, cfg config, j job) error {
	log := l.With(zap.String("skin", j.skin), zap.String("totem", j.totem))
	opts := totem.DefaultOptions()
	opts.SecondLayer = cfg.secondLayer

	t, err := totem.ConvertFile(j.skin, j.totem, opts)
	if err != nil {
		log.Error("convert", zap.Error(err), zap.String("kind", errorKind(err)))
		return err
	}
	log.Info("converted", zap.Bool("secondLayer", opts.SecondLayer))

	if cfg.stats {
		s := utils.ComputeStats(t)
		log.Info("stats",
			zap.Int("drawn", s.Drawn),
			zap.Int("opaque", s.Opaque),
			zap.Float64("coverage", s.Coverage),
			zap.Float64s("mean", s.Mean[:]),
			zap.Float64s("stddev", s.StdDev[:]))
	}
	if cfg.preview > 0 {
		path := derivePath(j.totem, "_preview")
		img := t
		if cfg.background != mctools.Transparent {
			img = utils.Flatten(t, cfg.background)
		}
		if err := codec.Save(path, utils.Upscale(img, cfg.preview)); err != nil {
			log.Error("preview", zap.Error(err))
			return err
		}
		log.Debug("wrote preview", zap.String("path", path), zap.Int("scale", cfg.preview))
	}
	if cfg.paletteSize > 0 {
		if err := writePalette(log, t, cfg, derivePath(j.totem, "_palette")); err != nil {
			return err
		}
	}
	return nil
}

func writePalette(log *zap.Logger, t *mctools.Canvas, cfg config, path string) error {
	palette := utils.ExtractPalette(t, cfg.paletteSize, cfg.method)
	if len(palette) == 0 {
		log.Warn("totem has no opaque pixels; skipping palette")
		return nil
	}
	utils.SortPaletteByBrightness(palette)
	if err := codec.Save(path, utils.Swatch(palette, 16)); err != nil {
		log.Error("palette", zap.Error(err))
		return err
	}
	hex := make([]string, len(palette))
	for i, c := range palette {
		hex[i] = utils.Hex(c)
	}
	log.Info("palette", zap.String("path", path), zap.String("method", cfg.method.String()), zap.Strings("colors", hex))
	return nil
}

// errorKind names the failure class for log filtering.
func errorKind(err error) string {
	var (
		decodeErr *mctools.DecodeError
		rangeErr  *mctools.RangeError
		ioErr     *codec.IOError
		encodeErr *codec.EncodeError
	)
	switch {
	case errors.As(err, &ioErr):
		return "io"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.Is(err, totem.ErrInvalidSkinDimensions):
		return "dimensions"
	case errors.As(err, &rangeErr):
		return "range"
	case errors.As(err, &encodeErr):
		return "encode"
	}
	return "unknown"
}
