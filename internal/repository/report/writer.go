// Package report serializes validation run reports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lexikit/packgen/internal/usecase/validate"
)

// Write emits the run report as indented JSON.
func Write(w io.Writer, run *validate.RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteFile writes the run report to disk, creating or truncating the
// target.
func WriteFile(path string, run *validate.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, run); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}
