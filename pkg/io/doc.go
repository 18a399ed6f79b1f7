// Package io reads and writes lineage ledgers as CSV and JSON.
//
// # Overview
//
// A ledger produced by an optimizer run is persisted so ancestry queries can
// run later, in another process, or behind the HTTP API. Two formats are
// supported:
//
//   - CSV: one row per individual, the interchange format for spreadsheets
//     and notebooks. This is the default output of "beeline run".
//   - JSON: an object with an "individuals" array, used for cache entries and
//     API payloads.
//
// Both formats preserve every field of [lineage.Individual], so a ledger
// written and re-read yields the same records, ids and timestamps included.
//
// # CSV Format
//
// The first row is a header. Columns are matched by name, so their order is
// free, but every column below must be present:
//
//	id,simulation_id,generation,distance,parent_1,parent_2,tour,n_generations,mutation_rate,elitism_rate,crossover,timestamp
//	1,3b7c...,0,4631.2,,,0-3-1-2-0,500,0.1,0.5,common-edge,2025-03-01T12:00:01Z
//
// Founders leave parent_1 and parent_2 empty. Tours are written as
// dash-separated point indices, depot first and last. Timestamps use RFC 3339
// with nanoseconds.
//
// # JSON Format
//
//	{
//	  "individuals": [
//	    {"id": 1, "simulation_id": "...", "generation": 0, "tour": [0, 3, 1, 2, 0],
//	     "distance": 4631.2, "n_generations": 500, "mutation_rate": 0.1,
//	     "elitism_rate": 0.5, "crossover": "common-edge", "timestamp": "..."}
//	  ]
//	}
//
// # Import
//
// [ReadCSV] and [ReadJSON] decode from any io.Reader and rebuild a ledger with
// [lineage.Restore]. [ImportCSV], [ImportJSON] and [Import] open a file path;
// [Import] picks the format from the extension. Malformed input is reported
// with [errors.ErrCodeInvalidFormat].
//
// # Export
//
// [WriteCSV] and [WriteJSON] encode anything that lists its individuals,
// such as a [lineage.Ledger]. [ExportCSV] and [ExportJSON] write to a path.
package io
