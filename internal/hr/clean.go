package hr

// clean.go normalizes raw records into canonical Employee records.
//
// The steps run in a fixed order because later steps depend on earlier
// invariants:
//  1. Deduplicate on employee_id (first occurrence wins)
//  2. Impute missing departments with "Unassigned"
//  3. Normalize dates to timestamps (sentinel on parse failure)
//  4. Derive is_active and coerce age/salary to numbers
//
// Dropped duplicates are a cleaning concern, not a validation concern: no
// issue is raised for them.

import (
	"log/slog"
	"strings"
)

// Clean runs the full cleaning pipeline over raw records and returns a new
// canonical record set. The input is never mutated; a single malformed cell
// degrades to a missing marker rather than aborting the batch.
func Clean(raw []RawRecord) []Employee {
	rows := dedupe(raw)

	records := make([]Employee, len(rows))
	for i, r := range rows {
		records[i] = canonicalize(r)
	}

	return records
}

// dedupe keeps only the first row for each employee_id, preserving the
// original input order.
func dedupe(raw []RawRecord) []RawRecord {
	seen := make(map[string]bool, len(raw))
	rows := make([]RawRecord, 0, len(raw))

	for _, r := range raw {
		id := CleanCell(r.EmployeeID)
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, r)
	}

	if dropped := len(raw) - len(rows); dropped > 0 {
		slog.Debug("removed duplicate records", "count", dropped)
	}

	return rows
}

// canonicalize converts one deduplicated raw row into a canonical record.
func canonicalize(r RawRecord) Employee {
	dept := CleanCell(r.Department)
	if dept == "" {
		dept = DepartmentUnassigned
	}

	e := Employee{
		EmployeeID:      CleanCell(r.EmployeeID),
		Name:            strings.TrimSpace(r.Name),
		Department:      dept,
		Age:             ToFloat(r.Age),
		Salary:          ToFloat(r.Salary),
		HireDate:        ToTimestamp(r.HireDate),
		TerminationDate: ToTimestamp(r.TerminationDate),
		Status:          Status(CleanCell(r.Status)),
	}

	// Exact, case-sensitive match; anything else is inactive.
	if e.Status == StatusActive {
		e.IsActive = 1
	}

	return e
}
