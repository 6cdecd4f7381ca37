package service

import (
	"context"
	"io"

	"agrimanage/entities"
)

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	// ArchivedAt is where the archive copy went, empty when not archived.
	ArchivedAt string
}

type ExportService interface {
	// Export renders the current crops as csv, xlsx or pdf.
	Export(ctx context.Context, format string) (File, error)
	// Import reads a CSV in the export layout and appends it, or replaces
	// every record when replace is set. Nothing is written if any row is bad.
	Import(ctx context.Context, r io.Reader, replace bool) ([]entities.Crop, error)
}
