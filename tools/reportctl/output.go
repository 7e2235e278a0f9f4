package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	reporting "creator-finance/internal/reporting/domain"
	"creator-finance/internal/reporting/interfaces"
)

// writeReport prints report as JSON, or renders it into out by extension.
func writeReport(stdout io.Writer, renderer *interfaces.Renderer, report reporting.Report, recipient, out string) error {
	if out == "" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	data, err := renderFile(renderer, report, recipient, out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	_, err = fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", out, len(data))
	return err
}

func renderFile(renderer *interfaces.Renderer, report reporting.Report, recipient, out string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(out)) {
	case ".pdf":
		return renderer.PDF(report, recipient)
	case ".xlsx":
		return renderer.XLSX(report)
	case ".json":
		return json.MarshalIndent(report, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported output extension %q", filepath.Ext(out))
	}
}
