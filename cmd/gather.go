package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/drengskapur/gatherfiles/pkg/config"
	"github.com/drengskapur/gatherfiles/pkg/gather"
	"github.com/drengskapur/gatherfiles/pkg/render"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

// run gathers target and delivers the blob to the selected destination.
func (a *App) run(ctx context.Context, target string) error {
	start := time.Now()

	repoRoot, configPath, err := a.locate()
	if err != nil {
		return err
	}

	fsys := gather.OSFileSystem{}
	collector := gather.NewCollector(
		gather.WithFileSystem(fsys),
		gather.WithLogger(a.logger.Named("gather")),
		gather.WithRepoRoot(repoRoot),
		gather.WithPresetLoader(config.Loader{RepoRoot: repoRoot, Logger: a.logger.Named("config")}),
	)

	req := gather.ResolveTarget(fsys, target, repoRoot, configPath)
	description := req.Describe()
	if target == "" {
		description = "root " + repoRoot
	}
	a.logger.Debug("Resolved target",
		zap.String("target", target),
		zap.Stringer("kind", req.Kind),
		zap.String("description", description))

	result, err := collector.Collect(req)
	if err != nil {
		return err
	}
	if a.flags.skipBinary {
		kept, dropped := result.WithoutBinaries()
		for _, e := range dropped {
			a.logger.Debug("Skipping binary file", zap.String("file", e.AbsPath))
		}
		if kept.Len() == 0 {
			return &gather.Error{Kind: gather.ErrEmptyResult, Path: result.Anchor}
		}
		result = kept
	}

	if a.flags.list {
		fmt.Fprint(a.Stdout, render.Tree(result))
		fmt.Fprintf(a.Stderr, "%s files (%s).\n", humanize.Comma(int64(result.Len())), description)
		return nil
	}

	assembler := render.NewAssembler(fsys, repoRoot,
		render.WithWorkers(a.flags.workers),
		render.WithLogger(a.logger.Named("render")))
	blob, err := assembler.Render(ctx, result)
	if err != nil {
		return err
	}

	verb, dest, err := a.deliver(blob)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(a.Stderr, "%s %s chars from %s files (%s)%s in %s.\n",
		color.GreenString(verb),
		bold(humanize.Comma(int64(blob.Chars))),
		bold(humanize.Comma(int64(blob.Files))),
		description,
		dest,
		roundElapsed(time.Since(start)))
	return nil
}

// deliver writes the blob to the destination picked by the flags and returns the
// verb and destination suffix for the summary line.
func (a *App) deliver(blob render.Blob) (verb, dest string, err error) {
	switch {
	case a.flags.output != "":
		if err := os.WriteFile(a.flags.output, []byte(blob.Text), 0644); err != nil {
			return "", "", fmt.Errorf("failed to write output file: %w", err)
		}
		return "Wrote", " to " + a.flags.output, nil
	case a.flags.stdout:
		if _, err := fmt.Fprint(a.Stdout, blob.Text); err != nil {
			return "", "", fmt.Errorf("failed to write to stdout: %w", err)
		}
		return "Printed", "", nil
	default:
		if err := a.Clipboard.WriteAll(blob.Text); err != nil {
			return "", "", err
		}
		return "Copied", "", nil
	}
}

// roundElapsed keeps roughly three significant digits.
func roundElapsed(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond)
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond)
	case d >= time.Microsecond:
		return d.Round(10 * time.Nanosecond)
	default:
		return d
	}
}
