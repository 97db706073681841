// Package hr provides the employee analytics pipeline: cleaning raw records
// into a canonical shape, validating them against business rules, and
// computing aggregate workforce metrics.
// This package has no I/O or UI dependencies and can be driven by any frontend.
package hr

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Status is an employee's employment status. The set is closed in practice;
// any value other than StatusActive is treated as inactive when deriving
// IsActive.
type Status string

const (
	StatusActive     Status = "Active"
	StatusTerminated Status = "Terminated"
)

// DepartmentUnassigned is the sentinel written for records whose department
// could not be resolved during cleaning.
const DepartmentUnassigned = "Unassigned"

// RawRecord is one row of the tabular source before cleaning. All fields are
// carried as text exactly as read; malformed values are resolved to explicit
// missing markers by Clean, never here.
type RawRecord struct {
	EmployeeID      string
	Name            string
	Department      string
	Age             string
	Salary          string
	HireDate        string
	TerminationDate string
	Status          string
}

// Employee is a canonical record produced by Clean.
//
// Age, Salary, HireDate and TerminationDate use pgtype values so that
// "missing or unparseable" is an explicit Valid=false marker that can never
// be mistaken for a real value in aggregate computations. They marshal to
// JSON null when invalid.
type Employee struct {
	EmployeeID      string           `json:"employee_id"`
	Name            string           `json:"name"`
	Department      string           `json:"department"`
	Age             pgtype.Float8    `json:"age"`
	Salary          pgtype.Float8    `json:"salary"`
	HireDate        pgtype.Timestamp `json:"hire_date"`
	TerminationDate pgtype.Timestamp `json:"termination_date"`
	Status          Status           `json:"status"`
	IsActive        int              `json:"is_active"`
}

// IssueType identifies which validation rule a record violated.
type IssueType string

const (
	IssueUnrealisticAge       IssueType = "UnrealisticAge"
	IssueNegativeSalary       IssueType = "NegativeSalary"
	IssueFutureHireDate       IssueType = "FutureHireDate"
	IssueUnassignedDepartment IssueType = "UnassignedDepartment"
)

// Severity ranks how serious an issue is. Severities are fixed per issue
// type, not derived from the offending value.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Issue is a single rule violation emitted by the Validator. Value carries
// the offending field rendered as text for display.
type Issue struct {
	EmployeeID string    `json:"employee_id"`
	Type       IssueType `json:"issue_type"`
	Value      string    `json:"value"`
	Severity   Severity  `json:"severity"`
}

// KPISnapshot is the fixed-shape aggregate metrics structure produced per
// pipeline run.
//
// AverageAge is an explicit undefined marker (JSON null) when no record
// carries a valid age; callers must check Valid before display. AttritionRate
// and AverageTenure default to 0.0 on degenerate input instead.
type KPISnapshot struct {
	Headcount     int            `json:"headcount"`
	DeptHeadcount map[string]int `json:"dept_headcount"`
	AttritionRate float64        `json:"attrition_rate"`
	AverageAge    pgtype.Float8  `json:"average_age"`
	AverageTenure float64        `json:"average_tenure"`
}
