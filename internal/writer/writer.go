// Package writer persists the rendered document, fully replacing the
// previous version so a reader never observes a partial page.
package writer

import (
	"fmt"

	"github.com/google/renameio/v2"

	applog "github.com/silasgubi/painel/internal/log"
)

// Write atomically replaces the file at path with data. renameio gives
// temp-file creation, fsync before rename and cleanup on error; regeneration
// is idempotent, so a failure here is simply fatal to the run.
func Write(path string, data []byte) error {
	log := applog.WithComponent("writer")

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("writer: create pending file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			log.Debug().Err(err).Msg("cleanup pending file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("writer: write page data: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("writer: atomically replace %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("page written")
	return nil
}
