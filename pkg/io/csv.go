package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/matzehuels/beeline/pkg/errors"
	"github.com/matzehuels/beeline/pkg/lineage"
	"github.com/matzehuels/beeline/pkg/tour"
)

// Columns is the CSV header written by [WriteCSV].
var Columns = []string{
	"id", "simulation_id", "generation", "distance", "parent_1", "parent_2", "tour",
	"n_generations", "mutation_rate", "elitism_rate", "crossover", "timestamp",
}

// Records lists individuals in a stable order. [lineage.Ledger] implements it.
type Records interface {
	All() []lineage.Individual
}

// WriteCSV writes every individual of l to w, preceded by the header.
func WriteCSV(l Records, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, ind := range l.All() {
		if err := cw.Write(csvRow(ind)); err != nil {
			return fmt.Errorf("write individual %d: %w", ind.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes l to a CSV file at path.
func ExportCSV(l Records, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(l, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV decodes a CSV ledger from r. ReadCSV does not close r.
func ReadCSV(r io.Reader, opts ...lineage.LedgerOption) (*lineage.Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "csv ledger is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, c := range Columns {
		if _, ok := idx[c]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "missing column %q", c)
		}
	}

	var records []lineage.Individual
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read line %d", line)
		}
		if len(row) != len(header) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: got %d fields, want %d", line, len(row), len(header))
		}
		ind, err := parseRow(func(col string) string { return row[idx[col]] })
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		records = append(records, ind)
	}

	l, err := lineage.Restore(records, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "restore ledger")
	}
	return l, nil
}

// ImportCSV reads a CSV ledger from the file at path.
func ImportCSV(path string, opts ...lineage.LedgerOption) (*lineage.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f, opts...)
}

func csvRow(ind lineage.Individual) []string {
	return []string{
		strconv.FormatInt(int64(ind.ID), 10),
		ind.SimulationID,
		strconv.Itoa(ind.Generation),
		formatFloat(ind.Length),
		formatParent(ind.ParentA),
		formatParent(ind.ParentB),
		ind.Tour.String(),
		strconv.Itoa(ind.Generations),
		formatFloat(ind.MutationRate),
		formatFloat(ind.ElitismRate),
		ind.Crossover,
		ind.CreatedAt.Format(time.RFC3339Nano),
	}
}

func parseRow(field func(string) string) (lineage.Individual, error) {
	var (
		ind lineage.Individual
		err error
	)
	p := parser{field: field}
	ind.ID = lineage.ID(p.int64("id"))
	ind.SimulationID = field("simulation_id")
	ind.Generation = int(p.int64("generation"))
	ind.Length = p.float("distance")
	ind.ParentA = p.parent("parent_1")
	ind.ParentB = p.parent("parent_2")
	ind.Generations = int(p.int64("n_generations"))
	ind.MutationRate = p.float("mutation_rate")
	ind.ElitismRate = p.float("elitism_rate")
	ind.Crossover = field("crossover")
	if p.err != nil {
		return ind, p.err
	}
	if ind.Tour, err = tour.Parse(field("tour")); err != nil {
		return ind, err
	}
	if ind.CreatedAt, err = time.Parse(time.RFC3339Nano, field("timestamp")); err != nil {
		return ind, fmt.Errorf("timestamp: %w", err)
	}
	return ind, nil
}

// parser accumulates the first conversion error of a row.
type parser struct {
	field func(string) string
	err   error
}

func (p *parser) int64(col string) int64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(p.field(col), 10, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func (p *parser) float(col string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(p.field(col), 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func (p *parser) parent(col string) lineage.ID {
	if p.field(col) == "" {
		return lineage.NoID
	}
	return lineage.ID(p.int64(col))
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func formatParent(id lineage.ID) string {
	if !id.Valid() {
		return ""
	}
	return strconv.FormatInt(int64(id), 10)
}
