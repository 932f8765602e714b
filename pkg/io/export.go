package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/chaostower/pkg/errors"
	"github.com/matzehuels/chaostower/pkg/geometry"
)

// Dump is the exported form of one run.
type Dump struct {
	RunID   string           `json:"run_id,omitempty"`
	Engine  string           `json:"engine"`
	Config  any              `json:"config,omitempty"`
	Points  []geometry.Point `json:"points"`
	Choices []int            `json:"choices"`
}

// Supported format names.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Write encodes d in the named format.
func Write(w io.Writer, d Dump, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, d)
	case FormatCSV:
		return WriteCSV(w, d.Points, d.Choices)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (want json or csv)", format)
	}
}

// WriteJSON writes d as indented JSON.
func WriteJSON(w io.Writer, d Dump) error {
	if d.Choices == nil {
		d.Choices = []int{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteCSV writes one row per point. choices[k] is the vertex or map that
// produced points[k+1].
func WriteCSV(w io.Writer, points []geometry.Point, choices []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "x", "y", "choice"}); err != nil {
		return err
	}
	row := make([]string, 4)
	for k, p := range points {
		row[0] = strconv.Itoa(k)
		row[1] = strconv.FormatFloat(p.X, 'g', -1, 64)
		row[2] = strconv.FormatFloat(p.Y, 'g', -1, 64)
		row[3] = ""
		if k > 0 && k-1 < len(choices) {
			row[3] = strconv.Itoa(choices[k-1])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes d to path in the named format.
func Export(d Dump, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, d, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
