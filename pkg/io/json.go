package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/lineage"
)

type document struct {
	Individuals []lineage.Individual `json:"individuals"`
}

// WriteJSON encodes every individual of l as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(l Records, w io.Writer) error {
	out := document{Individuals: l.All()}
	if out.Individuals == nil {
		out.Individuals = []lineage.Individual{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes l to a JSON file at path.
func ExportJSON(l Records, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a JSON ledger from r. Records keep their ids, so a
// document with duplicate or non-positive ids is rejected.
// ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...lineage.LedgerOption) (*lineage.Ledger, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode ledger")
	}
	l, err := lineage.Restore(data.Individuals, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "restore ledger")
	}
	return l, nil
}

// ImportJSON reads a JSON ledger from the file at path.
func ImportJSON(path string, opts ...lineage.LedgerOption) (*lineage.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts...)
}

// Import reads a ledger from path, as JSON when the extension is .json and
// as CSV otherwise.
func Import(path string, opts ...lineage.LedgerOption) (*lineage.Ledger, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportJSON(path, opts...)
	}
	return ImportCSV(path, opts...)
}

// Export writes l to path, as JSON when the extension is .json and as CSV
// otherwise.
func Export(l Records, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportJSON(l, path)
	}
	return ExportCSV(l, path)
}
