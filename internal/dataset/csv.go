// Package dataset reads and writes the tabular employee data consumed by the
// pipeline, and can generate synthetic datasets for demos and testing.
//
// Structural validation happens here, at the ingestion boundary: a dataset
// without the identity and status columns cannot be processed at all and
// fails fast with a descriptive error. Everything below column level is the
// cleaner's job and degrades per cell instead of failing.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"hrpulse/internal/hr"
)

// Column names of the raw employee dataset.
const (
	ColEmployeeID      = "employee_id"
	ColName            = "name"
	ColDepartment      = "department"
	ColAge             = "age"
	ColSalary          = "salary"
	ColHireDate        = "hire_date"
	ColTerminationDate = "termination_date"
	ColStatus          = "status"
)

// Columns is the canonical column order for exports.
var Columns = []string{
	ColEmployeeID, ColName, ColDepartment, ColAge, ColSalary,
	ColHireDate, ColTerminationDate, ColStatus,
}

// requiredColumns must be present in the header; the pipeline cannot proceed
// without identity and status fields.
var requiredColumns = []string{ColEmployeeID, ColStatus}

// headerIndex maps lowercased column names to their position in a row.
type headerIndex map[string]int

// ReadFile reads a raw employee dataset from a CSV file.
func ReadFile(path string) ([]hr.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return records, nil
}

// Read parses a raw employee dataset from CSV. The header row is validated
// for the required columns; missing optional columns simply yield empty
// cells for the cleaner to impute.
func Read(r io.Reader) ([]hr.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := validateHeader(header)
	if err != nil {
		return nil, err
	}

	var records []hr.RawRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		records = append(records, hr.RawRecord{
			EmployeeID:      cell(row, idx, ColEmployeeID),
			Name:            cell(row, idx, ColName),
			Department:      cell(row, idx, ColDepartment),
			Age:             cell(row, idx, ColAge),
			Salary:          cell(row, idx, ColSalary),
			HireDate:        cell(row, idx, ColHireDate),
			TerminationDate: cell(row, idx, ColTerminationDate),
			Status:          cell(row, idx, ColStatus),
		})
	}

	return records, nil
}

// Write exports raw records as CSV in canonical column order.
func Write(w io.Writer, records []hr.RawRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.EmployeeID, r.Name, r.Department, r.Age, r.Salary,
			r.HireDate, r.TerminationDate, r.Status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile exports raw records to a CSV file.
func WriteFile(path string, records []hr.RawRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	return Write(f, records)
}

// validateHeader builds the column index and fails fast when required
// columns are absent.
func validateHeader(header []string) (headerIndex, error) {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(hr.CleanCell(h))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// cell returns the raw value for a named column, or "" when the column is
// absent or the row is short.
func cell(row []string, idx headerIndex, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}
