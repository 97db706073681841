package hr

import (
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// frozenValidator returns a Validator pinned to a fixed timestamp so the
// future-hire-date check is reproducible.
func frozenValidator() *Validator {
	return &Validator{Now: func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}}
}

func ts(year, month, day int) pgtype.Timestamp {
	return pgtype.Timestamp{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), Valid: true}
}

func num(f float64) pgtype.Float8 {
	return pgtype.Float8{Float64: f, Valid: true}
}

func TestValidate_SeverityMapping(t *testing.T) {
	tests := []struct {
		name     string
		record   Employee
		wantType IssueType
		wantSev  Severity
		wantVal  string
	}{
		{
			name:     "negative salary is critical",
			record:   Employee{EmployeeID: "EMP-1", Department: "Sales", Salary: num(-50000)},
			wantType: IssueNegativeSalary,
			wantSev:  SeverityCritical,
			wantVal:  "-50000",
		},
		{
			name:     "unrealistic age is high",
			record:   Employee{EmployeeID: "EMP-2", Department: "Sales", Age: num(150)},
			wantType: IssueUnrealisticAge,
			wantSev:  SeverityHigh,
			wantVal:  "150",
		},
		{
			name:     "future hire date is medium",
			record:   Employee{EmployeeID: "EMP-3", Department: "Sales", HireDate: ts(2030, 12, 25)},
			wantType: IssueFutureHireDate,
			wantSev:  SeverityMedium,
			wantVal:  "2030-12-25",
		},
		{
			name:     "unassigned department is low",
			record:   Employee{EmployeeID: "EMP-4", Department: DepartmentUnassigned},
			wantType: IssueUnassignedDepartment,
			wantSev:  SeverityLow,
			wantVal:  DepartmentUnassigned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := frozenValidator().Validate([]Employee{tt.record})

			if len(issues) != 1 {
				t.Fatalf("Validate() returned %d issues, want exactly 1: %+v", len(issues), issues)
			}
			got := issues[0]
			if got.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", got.Type, tt.wantType)
			}
			if got.Severity != tt.wantSev {
				t.Errorf("Severity = %s, want %s", got.Severity, tt.wantSev)
			}
			if got.Value != tt.wantVal {
				t.Errorf("Value = %q, want %q", got.Value, tt.wantVal)
			}
			if got.EmployeeID != tt.record.EmployeeID {
				t.Errorf("EmployeeID = %s, want %s", got.EmployeeID, tt.record.EmployeeID)
			}
		})
	}
}

func TestValidate_AgeBounds(t *testing.T) {
	tests := []struct {
		age     pgtype.Float8
		flagged bool
	}{
		{num(17), true},
		{num(18), false},
		{num(100), false},
		{num(101), true},
		{pgtype.Float8{}, false}, // missing age is skipped, not flagged
	}

	for _, tt := range tests {
		issues := frozenValidator().Validate([]Employee{{EmployeeID: "EMP-1", Department: "Sales", Age: tt.age}})
		if got := len(issues) == 1; got != tt.flagged {
			t.Errorf("age %+v: flagged = %v, want %v", tt.age, got, tt.flagged)
		}
	}
}

func TestValidate_PastHireDateNotFlagged(t *testing.T) {
	issues := frozenValidator().Validate([]Employee{
		{EmployeeID: "EMP-1", Department: "Sales", HireDate: ts(2020, 6, 1)},
	})
	if len(issues) != 0 {
		t.Errorf("Validate() = %+v, want no issues for past hire date", issues)
	}
}

func TestValidate_MultiViolationRecord(t *testing.T) {
	// One record violating two independent rules yields one issue per rule.
	issues := frozenValidator().Validate([]Employee{
		{EmployeeID: "EMP-1", Department: DepartmentUnassigned, Salary: num(-100)},
	})

	if len(issues) != 2 {
		t.Fatalf("Validate() returned %d issues, want 2: %+v", len(issues), issues)
	}

	types := map[IssueType]bool{}
	for _, i := range issues {
		types[i.Type] = true
	}
	if !types[IssueNegativeSalary] || !types[IssueUnassignedDepartment] {
		t.Errorf("issue types = %v, want NegativeSalary and UnassignedDepartment", types)
	}
}

func TestValidate_PureAndRepeatable(t *testing.T) {
	records := []Employee{
		{EmployeeID: "EMP-1", Department: DepartmentUnassigned, Age: num(150), Salary: num(-1)},
		{EmployeeID: "EMP-2", Department: "Sales", HireDate: ts(2030, 1, 1)},
	}
	snapshot := make([]Employee, len(records))
	copy(snapshot, records)

	v := frozenValidator()
	first := v.Validate(records)
	second := v.Validate(records)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Validate() differs: %+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(records, snapshot) {
		t.Errorf("Validate mutated its input")
	}
}

func TestValidate_EmptyResult(t *testing.T) {
	issues := frozenValidator().Validate([]Employee{
		{EmployeeID: "EMP-1", Department: "Sales", Age: num(30), Salary: num(50000), HireDate: ts(2020, 1, 1)},
	})
	if issues == nil {
		t.Fatal("Validate() = nil, want non-nil empty list")
	}
	if len(issues) != 0 {
		t.Errorf("Validate() = %+v, want empty", issues)
	}
}
