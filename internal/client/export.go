package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
)

// Export writes the local notes as text to path, replacing the file. A
// failed export removes the partial file.
func Export(ctx context.Context, exporter service.ClientExportService, path string, out io.Writer, log *logger.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err = exporter.ExportText(ctx, f); err != nil {
		_ = f.Close()
		if rmErr := os.Remove(path); rmErr != nil {
			log.Err(rmErr).Str("path", path).Msg("remove partial export")
		}
		fmt.Fprintln(out, failureStyle.Render("Export failed"))
		return fmt.Errorf("export notes: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	fmt.Fprintln(out, successStyle.Render("Notes exported to "+path))
	log.Info().Str("path", path).Msg("export written")
	return nil
}
