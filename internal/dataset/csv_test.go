package dataset

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestRead_MapsColumnsByHeader(t *testing.T) {
	input := strings.Join([]string{
		"employee_id,name,department,age,salary,hire_date,termination_date,status",
		"EMP-1001,Employee 1,Engineering,34,95000,2020-01-15,,Active",
		"EMP-1002,Employee 2,,150,-50000,2030-12-25,2023-06-01,Terminated",
	}, "\n")

	records, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Read() returned %d records, want 2", len(records))
	}
	first := records[0]
	if first.EmployeeID != "EMP-1001" || first.Department != "Engineering" || first.Status != "Active" {
		t.Errorf("first record = %+v, want mapped fields", first)
	}
	if records[1].Salary != "-50000" || records[1].TerminationDate != "2023-06-01" {
		t.Errorf("second record = %+v, want raw cells preserved", records[1])
	}
}

func TestRead_ColumnOrderIndependent(t *testing.T) {
	input := "status,employee_id\nActive,EMP-1"

	records, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if records[0].EmployeeID != "EMP-1" || records[0].Status != "Active" {
		t.Errorf("record = %+v, want header-driven mapping", records[0])
	}
	// Absent optional columns yield empty cells for the cleaner to handle.
	if records[0].Department != "" || records[0].Age != "" {
		t.Errorf("record = %+v, want empty optional fields", records[0])
	}
}

func TestRead_MissingRequiredColumns(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no employee_id", "name,status\nx,Active", "employee_id"},
		{"no status", "employee_id,name\nEMP-1,x", "status"},
		{"neither", "name,department\nx,y", "employee_id, status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.header))
			if err == nil {
				t.Fatal("Read() error = nil, want structural error")
			}
			if !strings.Contains(err.Error(), "missing required columns") || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to name %q", err, tt.want)
			}
		})
	}
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	if err == nil || !strings.Contains(err.Error(), "missing header row") {
		t.Errorf("Read() error = %v, want missing header row", err)
	}
}

func TestRead_ShortRows(t *testing.T) {
	input := "employee_id,department,status\nEMP-1,Sales"

	records, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if records[0].Status != "" {
		t.Errorf("Status = %q, want empty cell for short row", records[0].Status)
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	records := Generate(Profile{
		Records:         10,
		Seed:            7,
		Departments:     []string{"Engineering", "Sales"},
		TerminatedShare: 0.3,
	})

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	parsed, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(records, parsed) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", parsed, records)
	}
}
