package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"SwingScope/internal/domain/models"
	domrepo "SwingScope/internal/domain/repository"
	"SwingScope/pkg/util"
)

// FileReportWriter writes each report to a dated JSON file under the
// output directory, one subdirectory per day.
type FileReportWriter struct {
	dir string
}

func NewFileReportWriter(dir string) *FileReportWriter {
	if dir == "" {
		dir = "output"
	}
	return &FileReportWriter{dir: dir}
}

func (w *FileReportWriter) Write(_ context.Context, report *models.Report) error {
	stamp := util.DateStamp(report.GeneratedAt)
	dir := filepath.Join(w.dir, stamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_analysis_%s.json", report.Symbol, stamp))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

var _ domrepo.ReportWriter = (*FileReportWriter)(nil)
