// Command flourish draws a generated curve, either in the terminal or
// headless into a PNG, SVG or animated GIF file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"flourish/internal/geom"
	"flourish/internal/render"
	"flourish/internal/tui"
)

func main() {
	var (
		width       = flag.Float64("width", 800, "export width in logical pixels")
		height      = flag.Float64("height", 800, "export height in logical pixels")
		margin      = flag.Float64("margin", render.DefaultMargin, "margin as a fraction of each dimension")
		dpr         = flag.Float64("dpr", 2, "device pixel ratio of raster exports")
		stroke      = flag.String("color", "black", "stroke color")
		lineWidth   = flag.Float64("line-width", render.DefaultLineWidth, "stroke width in logical pixels")
		animate     = flag.Bool("animate", false, "draw progressively")
		marker      = flag.Bool("marker", false, "show the pen marker while animating")
		batch       = flag.Int("batch", render.DefaultBatchSize, "segments drawn per frame")
		radius      = flag.Float64("marker-radius", render.DefaultMarkerRadius, "marker radius in logical pixels")
		markerColor = flag.String("marker-color", "red", "marker color")
		keepMarker  = flag.Bool("keep-marker", false, "leave the marker on the last point")
		bg          = flag.String("bg", "white", "export background color")
		out         = flag.String("out", "", "write a .png, .svg or .gif file instead of starting the viewer")
		frameEvery  = flag.Int("frame-every", 1, "keep one GIF frame out of every n")
		delay       = flag.Int("delay", 4, "GIF frame delay in hundredths of a second")
		verbose     = flag.Bool("v", false, "log render events to stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: flourish [flags] <curve-file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := render.DefaultConfig(*width, *height)
	cfg.Viewport.Margin = *margin
	cfg.Viewport.PixelRatio = *dpr
	cfg.Style.Width = *lineWidth
	cfg.Animated = *animate
	cfg.ShowMarker = *marker
	cfg.BatchSize = *batch
	cfg.MarkerRadius = *radius
	cfg.KeepMarker = *keepMarker
	var err error
	if cfg.Style.Color, err = render.ParseColor(*stroke); err != nil {
		log.Fatal(err)
	}
	if cfg.MarkerColor, err = render.ParseColor(*markerColor); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if *out == "" {
		var m tea.Model
		opts := []tui.Option{tui.WithExport(*width, *height, *bg)}
		if flag.NArg() > 0 {
			m = tui.NewWithPath(cfg, flag.Arg(0), opts...)
		} else {
			m = tui.New(cfg, opts...)
		}
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	c, err := geom.Load(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	background, err := render.ParseColor(*bg)
	if err != nil {
		log.Fatal(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	job := exportJob{
		path:       *out,
		curve:      c,
		cfg:        cfg,
		bg:         background,
		frameEvery: *frameEvery,
		delay:      *delay,
	}
	if err := job.run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Printf("Saved %s (%gx%g, %d points)\n", *out, *width, *height, len(c.Points))
}
