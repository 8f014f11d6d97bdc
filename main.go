package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/drengskapur/gatherfiles/cmd"
	"github.com/drengskapur/gatherfiles/pkg/clipboard"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	app := cmd.NewApp(clipboard.System{})
	err := app.Execute(ctx, os.Args[1:])
	stop()

	logger := app.Logger()
	if err != nil {
		logger.Debug("gf execution failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	}

	// Check if stderr is a terminal or a regular file before attempting to sync.
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") {
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}

	if err != nil {
		os.Exit(1)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
