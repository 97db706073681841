package hr

// validate.go scans canonical records for business-rule violations.
//
// Rule violations are the Validator's normal output, not errors: a record
// that fails a rule produces an Issue and processing continues. The four
// checks are independent; a single record can produce one issue per rule it
// violates. Severities are a fixed lookup per issue type so that downstream
// consumers keyed on severity strings stay compatible.

import (
	"strconv"
	"time"
)

// Plausible age bounds for the age check. Missing ages are skipped, not
// flagged.
const (
	MinPlausibleAge = 18
	MaxPlausibleAge = 100
)

// severityByType is the fixed severity assignment per rule.
var severityByType = map[IssueType]Severity{
	IssueUnrealisticAge:       SeverityHigh,
	IssueNegativeSalary:       SeverityCritical,
	IssueFutureHireDate:       SeverityMedium,
	IssueUnassignedDepartment: SeverityLow,
}

// SeverityFor returns the fixed severity for an issue type.
func SeverityFor(t IssueType) Severity {
	return severityByType[t]
}

// Validator runs rule checks over canonical records. Now is the clock used
// by the future-hire-date check; tests can freeze it.
type Validator struct {
	Now func() time.Time
}

// NewValidator returns a Validator using the wall clock.
func NewValidator() *Validator {
	return &Validator{Now: time.Now}
}

// Validate is a convenience wrapper using the wall clock.
func Validate(records []Employee) []Issue {
	return NewValidator().Validate(records)
}

// Validate runs all rule checks and returns a new issue list. An empty list
// is a valid "no issues" result. The input is read-only; calling Validate
// twice on the same records yields equal results (modulo the wall-clock
// dependency of the future-hire-date check).
func (v *Validator) Validate(records []Employee) []Issue {
	issues := make([]Issue, 0)

	issues = v.checkUnrealisticAges(records, issues)
	issues = v.checkNegativeSalaries(records, issues)
	issues = v.checkFutureHireDates(records, issues)
	issues = v.checkUnassignedDepartments(records, issues)

	return issues
}

// checkUnrealisticAges flags records where age is outside [18, 100].
func (v *Validator) checkUnrealisticAges(records []Employee, issues []Issue) []Issue {
	for _, e := range records {
		if !e.Age.Valid {
			continue
		}
		if e.Age.Float64 < MinPlausibleAge || e.Age.Float64 > MaxPlausibleAge {
			issues = append(issues, Issue{
				EmployeeID: e.EmployeeID,
				Type:       IssueUnrealisticAge,
				Value:      formatFloat(e.Age.Float64),
				Severity:   SeverityFor(IssueUnrealisticAge),
			})
		}
	}
	return issues
}

// checkNegativeSalaries flags records with negative salary values.
func (v *Validator) checkNegativeSalaries(records []Employee, issues []Issue) []Issue {
	for _, e := range records {
		if !e.Salary.Valid {
			continue
		}
		if e.Salary.Float64 < 0 {
			issues = append(issues, Issue{
				EmployeeID: e.EmployeeID,
				Type:       IssueNegativeSalary,
				Value:      formatFloat(e.Salary.Float64),
				Severity:   SeverityFor(IssueNegativeSalary),
			})
		}
	}
	return issues
}

// checkFutureHireDates flags hire dates after the current timestamp. The
// rule is relative to Now, so the same record can flip between runs.
func (v *Validator) checkFutureHireDates(records []Employee, issues []Issue) []Issue {
	now := v.Now()
	for _, e := range records {
		if !e.HireDate.Valid {
			continue
		}
		if e.HireDate.Time.After(now) {
			issues = append(issues, Issue{
				EmployeeID: e.EmployeeID,
				Type:       IssueFutureHireDate,
				Value:      e.HireDate.Time.Format("2006-01-02"),
				Severity:   SeverityFor(IssueFutureHireDate),
			})
		}
	}
	return issues
}

// checkUnassignedDepartments flags records whose department is the
// "Unassigned" sentinel, whether imputed or originally so.
func (v *Validator) checkUnassignedDepartments(records []Employee, issues []Issue) []Issue {
	for _, e := range records {
		if e.Department == DepartmentUnassigned {
			issues = append(issues, Issue{
				EmployeeID: e.EmployeeID,
				Type:       IssueUnassignedDepartment,
				Value:      DepartmentUnassigned,
				Severity:   SeverityFor(IssueUnassignedDepartment),
			})
		}
	}
	return issues
}

// formatFloat renders a numeric value for display without trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
