package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/clipmerge/pkg/adapters/authorizer"
	"github.com/user/clipmerge/pkg/adapters/dirlibrary"
	"github.com/user/clipmerge/pkg/adapters/logger"
	"github.com/user/clipmerge/pkg/adapters/miniolibrary"
	"github.com/user/clipmerge/pkg/adapters/osfilesystem"
	"github.com/user/clipmerge/pkg/clipmerge"
	"github.com/user/clipmerge/pkg/config"
	"github.com/user/clipmerge/pkg/orchestrator"
	"github.com/user/clipmerge/pkg/pipeline"
	"github.com/user/clipmerge/pkg/ports"
	"github.com/user/clipmerge/pkg/summarizer"
)

func mergeCommand() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     l10n.T("Merge two clips and an audio track into one movie"),
		UsageText: "clipmerge merge [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: l10n.T("Input")},
			&cli.StringFlag{Name: "first", Usage: l10n.T("First video (plays from the start)"), Category: l10n.T("Input")},
			&cli.StringFlag{Name: "second", Usage: l10n.T("Second video (plays after the first, sets the output size)"), Category: l10n.T("Input")},
			&cli.StringFlag{Name: "audio", Usage: l10n.T("Audio track laid across both clips"), Category: l10n.T("Input")},

			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: l10n.T("Directory for the exported movie"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "prefix", Usage: l10n.T("Output file name prefix"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "container", Usage: l10n.T("Output container (mov, mp4)"), Category: l10n.T("Output")},
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: l10n.T("Quality preset (highest, high, medium, low)"), Category: l10n.T("Output")},
			&cli.Float64Flag{Name: "fps", Usage: l10n.T("Output frame rate (default: 30)"), Category: l10n.T("Output")},
			&cli.BoolFlag{Name: "no-network-optimize", Usage: l10n.T("Do not move the index to the front of the file"), Category: l10n.T("Output")},

			&cli.StringFlag{Name: "library", Usage: l10n.T("Library backend (dir, minio)"), Category: l10n.T("Library")},
			&cli.StringFlag{Name: "library-dir", Usage: l10n.T("Directory of the dir library"), Category: l10n.T("Library")},
			&cli.StringFlag{Name: "auth", Usage: l10n.T("Library access (prompt, granted, denied)"), Category: l10n.T("Library")},

			&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to ffmpeg executable"), Category: l10n.T("Tools")},
			&cli.StringFlag{Name: "ffprobe", Usage: l10n.T("Path to ffprobe executable"), Category: l10n.T("Tools")},

			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: l10n.T("Debug")},
			&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output"), Category: l10n.T("Debug")},
			&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: l10n.T("Output execution summary to file (Markdown format)"), Category: l10n.T("Debug")},

			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
		},
		Action: runMerge,
	}
}

// buildConfig layers the config file, .env and environment, then flags.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv(); err != nil {
		return cfg, err
	}

	overrides := map[string]*string{
		"first":       &cfg.FirstVideo,
		"second":      &cfg.SecondVideo,
		"audio":       &cfg.Audio,
		"output-dir":  &cfg.OutputDir,
		"prefix":      &cfg.OutputPrefix,
		"container":   &cfg.Container,
		"preset":      &cfg.Preset,
		"library":     &cfg.Library.Type,
		"library-dir": &cfg.Library.Dir,
		"auth":        &cfg.Library.Auth,
		"ffmpeg":      &cfg.FFmpegPath,
		"ffprobe":     &cfg.FFprobePath,
		"debug-dir":   &cfg.DebugDir,
	}
	for name, dst := range overrides {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.Bool("no-network-optimize") {
		cfg.NetworkOptimized = false
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func newLogger(c *cli.Context) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
}

func newLibrary(cfg config.Config, fs ports.FileSystem) (ports.Library, error) {
	if cfg.Library.Type == config.LibraryMinIO {
		m := cfg.Library.MinIO
		return miniolibrary.New(miniolibrary.Config{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			UseSSL:    m.UseSSL,
			Region:    m.Region,
			Bucket:    m.Bucket,
			Prefix:    m.Prefix,
		})
	}
	return dirlibrary.New(cfg.Library.Dir, fs), nil
}

func runMerge(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	fs := osfilesystem.New()
	library, err := newLibrary(cfg, fs)
	if err != nil {
		return err
	}
	auth, err := authorizer.New(authorizer.Mode(cfg.Library.Auth))
	if err != nil {
		return err
	}

	opts := clipmerge.Options{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		Library:     library,
		Authorizer:  auth,
		FileSystem:  fs,
		Logger:      log,
	}
	if cfg.Debug {
		opts.DebugDir = cfg.DebugDir
	}
	merger, err := clipmerge.New(opts)
	if err != nil {
		return err
	}

	orchConfig := cfg.ToOrchestratorConfig()
	result, runErr := merger.Merge(ctx, orchConfig)

	if path := c.String("summary"); path != "" {
		s := buildSummary(orchConfig, result, runErr)
		if err := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs).Write(path, s); err != nil {
			log.Error("Failed to write summary: %v", err)
		} else {
			log.Info("Summary saved to %s", path)
		}
	}

	return report(c, result, runErr)
}

// report prints the user-facing outcome. Any failure after the pipeline
// started, export failures included, ends in "Failed to save video".
func report(c *cli.Context, result orchestrator.RunResult, runErr error) error {
	out := c.App.Writer
	switch {
	case runErr != nil:
		fmt.Fprintln(c.App.ErrWriter, l10n.T("Failed to save video"))
		if errors.Is(runErr, context.Canceled) {
			return cli.Exit(l10n.T("Interrupted"), 130)
		}
		return cli.Exit(runErr.Error(), 1)
	case result.Saved():
		fmt.Fprintln(out, l10n.T("Video saved"))
	case result.Completion.Outcome == pipeline.OutcomeNotAuthorized:
		fmt.Fprintln(out, l10n.F("Library access denied; video kept at %s", result.Export.OutputPath))
	}
	return nil
}

func buildSummary(cfg orchestrator.Config, result orchestrator.RunResult, runErr error) *summarizer.Summary {
	b := summarizer.NewBuilder().
		WithSource("First video", result.FirstVideo).
		WithSource("Second video", result.SecondVideo).
		WithSource("Audio", result.Audio)

	var seam time.Duration
	if result.FirstVideo != nil {
		seam = result.FirstVideo.Duration
	}
	b.WithComposition(summarizer.CompositionInfo{
		TotalDuration: result.TotalDuration,
		SeamAt:        seam,
		RenderSize:    result.RenderSize,
		FrameRate:     result.FrameRate,
	})

	exp := summarizer.ExportInfo{
		Status:           string(result.Export.Status),
		OutputPath:       result.Export.OutputPath,
		Container:        string(cfg.Container),
		Preset:           string(cfg.Preset),
		NetworkOptimized: cfg.NetworkOptimized,
		FileSize:         result.Export.FileSize,
		Elapsed:          result.Export.Elapsed,
	}
	if result.Export.Err != nil {
		exp.Error = result.Export.Err.Error()
	} else if runErr != nil && result.Export.Status == "" {
		exp.Error = runErr.Error()
	}
	b.WithExport(exp)

	lib := summarizer.LibraryInfo{Outcome: string(result.Completion.Outcome)}
	if result.Completion.Asset != nil {
		lib.AssetID = result.Completion.Asset.ID
		lib.Location = result.Completion.Asset.Location
	}
	if result.Completion.Err != nil {
		lib.Error = result.Completion.Err.Error()
	}
	return b.WithLibrary(lib).Build()
}
