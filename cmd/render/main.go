// Command render writes the chart once as an HTML page, SVG or PNG.
//
//	render -source <url|file> -format html|svg|png -out <path>
//
// Anything not given on the command line comes from the same configuration
// as the server. Logs go to stderr so stdout can carry the artifact.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	app "github.com/okian/tourplot/internal/app"
	"github.com/okian/tourplot/internal/config"
	"github.com/okian/tourplot/pkg/logger"
)

const outFilePermission = 0o644

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "render:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		source = fs.String("source", "", "dataset URL or local JSON file (default from config)")
		format = fs.String("format", app.FormatSVG, "output format: html, svg or png")
		out    = fs.String("out", "", "output path (default stdout)")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if *source != "" {
		applySource(cfg, *source)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		fmt.Fprintln(stderr, "logging:", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	log := logger.Named("render")

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	switch fmtName {
	case app.FormatHTML, app.FormatSVG, app.FormatPNG:
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		fs.Usage()
		return errUsage
	}

	svc := app.FromConfig(cfg, logger.Get())

	var w io.Writer = stdout
	if *out != "" {
		f, err := os.OpenFile(*out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outFilePermission)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer f.Close()
		w = f
	}

	cw := &countingWriter{w: w}
	if err := svc.Render(ctx, cw, fmtName); err != nil {
		return err
	}
	if f, ok := w.(*os.File); ok && *out != "" {
		if err := f.Sync(); err != nil {
			return fmt.Errorf("sync output: %w", err)
		}
	}

	dest := *out
	if dest == "" {
		dest = "stdout"
	}
	log.Info(ctx, "chart written",
		logger.String("format", fmtName),
		logger.String("out", dest),
		logger.String("size", humanize.Bytes(uint64(cw.n))),
	)
	return nil
}

// applySource points cfg at a URL or a local file.
func applySource(cfg *config.Config, source string) {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		cfg.DatasetURL = source
		cfg.DatasetFile = ""
		return
	}
	cfg.DatasetFile = source
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
