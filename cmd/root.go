package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/drengskapur/gatherfiles/pkg/clipboard"
	"github.com/drengskapur/gatherfiles/pkg/config"
	"github.com/drengskapur/gatherfiles/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the state shared by gf's commands.
type App struct {
	Clipboard clipboard.Writer
	Stdout    io.Writer
	Stderr    io.Writer
	Getwd     func() (string, error)

	logger *zap.Logger
	flags  flags
}

type flags struct {
	config     string
	stdout     bool
	output     string
	list       bool
	workers    int
	skipBinary bool
	debug      bool
}

// NewApp returns an App that copies to clip and writes to the process streams.
func NewApp(clip clipboard.Writer) *App {
	return &App{
		Clipboard: clip,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Getwd:     os.Getwd,
		logger:    zap.NewNop(),
	}
}

// Logger returns the logger built from the parsed flags, or a no-op logger before
// the command has run.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// NewRootCommand builds the gf command tree.
func (a *App) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "gf [target]",
		Short: "Gather files, stitch them together and copy them to the clipboard",
		Long: `gf collects the files under a path, or the files selected by a named preset in
.gather-files.yaml, and joins them into a single text blob with a header before
each file. The blob is copied to the clipboard unless --stdout or --output is given.

With no target the repository root is gathered. A target naming an existing path
(absolute, or relative to the repository root) gathers that path; any other
target is looked up as a preset.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.flags.debug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 1 {
				target = args[0]
			}
			return a.run(cmd.Context(), target)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", config.DefaultFileName, "Path to the config file, relative to the repository root unless absolute")
	pf.BoolVar(&a.flags.debug, "debug", false, "Enable debug logging")

	f := root.Flags()
	f.BoolVar(&a.flags.stdout, "stdout", false, "Write the blob to stdout instead of the clipboard")
	f.StringVarP(&a.flags.output, "output", "o", "", "Write the blob to a file instead of the clipboard")
	f.BoolVarP(&a.flags.list, "list", "l", false, "List the files that would be gathered as a tree")
	f.IntVarP(&a.flags.workers, "workers", "w", 0, "Number of files read concurrently (0 = number of CPUs)")
	f.BoolVar(&a.flags.skipBinary, "skip-binary", false, "Leave out files with binary extensions (images, archives, objects)")
	root.MarkFlagsMutuallyExclusive("stdout", "output", "list")

	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)
	root.AddCommand(a.newPresetsCommand(), newVersionCommand())
	return root
}

// Execute runs gf with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// locate returns the repository root (the working directory when it is not inside
// a repository) and the resolved config path.
func (a *App) locate() (repoRoot, configPath string, err error) {
	cwd, err := a.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("failed to determine current working directory: %w", err)
	}

	repoRoot = cwd
	if root, ok := config.FindRepoRoot(cwd); ok {
		repoRoot = root
	}
	configPath = config.ResolvePath(repoRoot, a.flags.config)

	a.logger.Debug("Located repository",
		zap.String("cwd", cwd),
		zap.String("repoRoot", repoRoot),
		zap.String("config", configPath))
	return repoRoot, configPath, nil
}
