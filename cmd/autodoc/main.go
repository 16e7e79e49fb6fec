package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/kiara-inc/autodoc/internal/config"
	"github.com/kiara-inc/autodoc/internal/docplan"
	"github.com/kiara-inc/autodoc/internal/engine"
	"github.com/kiara-inc/autodoc/internal/generator"
	"github.com/kiara-inc/autodoc/internal/logfields"
	"github.com/kiara-inc/autodoc/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"autodoc.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Run struct {
		RepoPath string `short:"r" help:"Repository to document" default:"."`
		From     string `help:"Base revision for the diff (default: last published checkpoint)"`
		To       string `help:"Target revision for the diff" default:"HEAD"`
	} `cmd:"" help:"Generate and publish documentation for the repository"`

	Plan struct {
		RepoPath string `short:"r" help:"Repository to document" default:"."`
		From     string `help:"Base revision for the diff"`
		To       string `help:"Target revision for the diff" default:"HEAD"`
	} `cmd:"" help:"Show which documents a run would regenerate, without generating"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "run":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runGenerate(cfg); err != nil {
			slog.Error("Run failed", "error", err)
			os.Exit(1)
		}
	case "plan":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runPlan(cfg); err != nil {
			slog.Error("Plan failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", CLI.Config)
	case "version":
		fmt.Printf("autodoc %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
	}
}

func runGenerate(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen, err := generator.NewGeminiGenerator(ctx, cfg.Model)
	if err != nil {
		return err
	}

	runner := engine.NewRunner(cfg, gen)
	res, err := runner.Run(ctx, engine.RunOptions{
		RepoPath: CLI.Run.RepoPath,
		FromRev:  CLI.Run.From,
		ToRev:    CLI.Run.To,
	})
	if err != nil {
		return err
	}
	if res.TotalFailure() {
		_, failed, _ := res.Counts()
		return fmt.Errorf("all %d generation jobs failed", failed)
	}
	return nil
}

func runPlan(cfg *config.Config) error {
	runner := engine.NewRunner(cfg, nil)
	cl, plan, err := runner.Plan(context.Background(), engine.RunOptions{
		RepoPath: CLI.Plan.RepoPath,
		FromRev:  CLI.Plan.From,
		ToRev:    CLI.Plan.To,
	})
	if err != nil {
		return err
	}

	for _, job := range plan.Jobs {
		if job.Status == docplan.StatusSkipped {
			continue
		}
		slog.Info("would generate",
			logfields.Kind(string(job.Kind)),
			logfields.Lang(job.Lang),
			logfields.Reason(job.Reason),
			logfields.Path(job.TargetPath))
	}
	for _, k := range docplan.AllKinds() {
		if reason, ok := cl.Skipped[k]; ok {
			slog.Info("would skip", logfields.Kind(string(k)), logfields.Reason(reason))
		}
	}
	if cl.NothingToDo() {
		slog.Info("nothing to do")
	}
	return nil
}
