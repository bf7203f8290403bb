package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"polyfill/internal/export"
	"polyfill/internal/geom"
	"polyfill/internal/logx"
	"polyfill/internal/raster"
	"polyfill/internal/scene"
	"polyfill/internal/tui"
)

const defaultScene = "green"

type options struct {
	out            string
	noWindow       bool
	noExport       bool
	inclusiveSpans bool
	watch          bool
	mode           string
	logFile        string
	logLevel       string
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "polyfill [scene|file]",
		Short: "Fill polygons into a pixel buffer, preview them and save an image",
		Long: `polyfill rasterizes polygons with an even-odd scanline fill, shows the
result in the terminal and writes it to an image file.

The argument is a built-in scene name (see "polyfill scenes"), a .toml scene
file or a geometry file (` + strings.Join(geom.Extensions, ", ") + `).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := defaultScene
			if len(args) == 1 {
				target = args[0]
			}
			return run(cmd.Context(), o, target, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.out, "out", "o", "", "output image (.png, .jpg, .gif, .tif, .bmp); default <scene>.png")
	f.BoolVar(&o.noWindow, "no-window", false, "render and export without the terminal viewer")
	f.BoolVar(&o.noExport, "no-export", false, "do not write an image file")
	f.BoolVar(&o.inclusiveSpans, "inclusive-spans", false, "fill span end pixels too")
	f.BoolVar(&o.watch, "watch", false, "re-render when the scene file changes")
	f.StringVar(&o.mode, "mode", "auto", "viewer render mode: auto, color or braille")
	f.StringVar(&o.logFile, "log-file", "", "append logs to this file")
	f.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	cmd.AddCommand(newScenesCmd())
	return cmd
}

func newScenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes [name]",
		Short: "List built-in scenes, or print one as a TOML scene file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				s, err := scene.Builtin(args[0])
				if err != nil {
					return err
				}
				return scene.EncodeTOML(w, s)
			}
			for _, name := range scene.Names() {
				s, _ := scene.Builtin(name)
				fmt.Fprintf(w, "%-12s %s (%d fills)\n", name, s.Title, len(s.Fills))
			}
			return nil
		},
	}
}

func parseMode(s string) (tui.Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return tui.ModeAuto, nil
	case "color":
		return tui.ModeColor, nil
	case "braille":
		return tui.ModeBraille, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// loadScene resolves a built-in name first, then a file path.
func loadScene(target string) (*scene.Scene, error) {
	s, err := scene.Builtin(target)
	if err == nil {
		return s, nil
	}
	if _, serr := os.Stat(target); serr != nil {
		if errors.Is(serr, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q is neither a built-in scene nor a file", scene.ErrUnknownScene, target)
		}
		return nil, serr
	}
	return scene.LoadFile(target)
}

// setupLogging installs the process logger. The viewer owns the terminal, so
// without --log-file logging stays silent while it runs.
func setupLogging(o options, window bool, stderr io.Writer) (func(), error) {
	lvl, err := logx.ParseLevel(o.logLevel)
	if err != nil {
		return func() {}, err
	}
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return func() {}, fmt.Errorf("log file: %w", err)
		}
		logx.Set(logx.New(f, lvl))
		return func() {
			logx.Set(nil)
			_ = f.Close()
		}, nil
	case !window:
		logx.Set(logx.New(stderr, lvl))
		return func() { logx.Set(nil) }, nil
	}
	return func() {}, nil
}

func run(ctx context.Context, o options, target string, stdout, stderr io.Writer) error {
	mode, err := parseMode(o.mode)
	if err != nil {
		return err
	}
	window := !o.noWindow && isatty.IsTerminal(os.Stdout.Fd())
	closeLog, err := setupLogging(o, window, stderr)
	defer closeLog()
	if err != nil {
		return err
	}

	s, err := loadScene(target)
	if err != nil {
		return err
	}
	filler := raster.Filler{InclusiveSpans: o.inclusiveSpans}
	logx.L().Debug("scene loaded", "name", s.Name, "fills", len(s.Fills),
		"size", fmt.Sprintf("%dx%d", s.Width, s.Height), "inclusive", o.inclusiveSpans)

	var buf *raster.Buffer
	if window {
		res, err := tui.Run(ctx, tui.Options{
			Scene:   s,
			Filler:  filler,
			Mode:    mode,
			Watch:   o.watch,
			OutPath: o.out,
		})
		if err != nil {
			return err
		}
		s, buf = res.Scene, res.Buffer
	} else {
		var st scene.Stats
		if buf, st, err = scene.Render(ctx, s, filler); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %d fills, %d spans, %d pixels written, %d clipped, %d in hole\n",
			s.Name, st.Fills, st.Spans, st.Written, st.Clipped, st.InHole)
	}
	if o.noExport {
		return nil
	}
	out := o.out
	if out == "" {
		out = s.Name + ".png"
	}
	if err := export.Save(out, buf); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "wrote", out)
	return nil
}
