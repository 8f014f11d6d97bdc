package render

import (
	"context"

	"github.com/drengskapur/gatherfiles/pkg/gather"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// readAll reads the entries with at most a.workers concurrent reads. The returned
// slice is indexed like entries.
func (a *Assembler) readAll(ctx context.Context, entries []gather.FileEntry) ([][]byte, error) {
	contents := make([][]byte, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	a.logger.Debug("Distributing files to workers",
		zap.Int("files", len(entries)),
		zap.Int("workers", a.workers))
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := a.fs.ReadFile(entry.AbsPath)
			if err != nil {
				a.logger.Debug("Failed to read file",
					zap.String("file", entry.AbsPath),
					zap.Error(err))
				return gather.IOError(entry.AbsPath, err)
			}
			contents[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.logger.Debug("All files read", zap.Int("files", len(entries)))
	return contents, nil
}
