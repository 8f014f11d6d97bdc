package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/drengskapur/gatherfiles/pkg/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *App) newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the presets defined in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, configPath, err := a.locate()
			if err != nil {
				return err
			}

			f, err := config.Load(configPath)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(a.Stderr, "No config file at %s.\n", configPath)
				return nil
			}
			if err != nil {
				return err
			}

			names := f.Names()
			if len(names) == 0 {
				fmt.Fprintf(a.Stderr, "No presets defined in %s.\n", configPath)
				return nil
			}

			width := 0
			for _, name := range names {
				width = max(width, len(name))
			}

			bold := color.New(color.Bold).SprintFunc()
			faint := color.New(color.Faint).SprintFunc()
			for _, name := range names {
				p := f.Presets[name]
				line := bold(name) + strings.Repeat(" ", width-len(name)+2) + strings.Join(p.Include, ", ")

				var extra []string
				if p.Base != "" {
					extra = append(extra, "base "+p.Base)
				}
				if len(p.Exclude) > 0 {
					extra = append(extra, "exclude "+strings.Join(p.Exclude, ", "))
				}
				if len(extra) > 0 {
					line += " " + faint("("+strings.Join(extra, "; ")+")")
				}
				fmt.Fprintln(a.Stdout, line)
			}
			return nil
		},
	}
}
