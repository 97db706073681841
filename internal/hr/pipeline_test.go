package hr

import "testing"

func TestRun(t *testing.T) {
	raw := []RawRecord{
		{EmployeeID: "EMP-1", Department: "Engineering", Age: "34", Salary: "95000", HireDate: "2020-01-15", Status: "Active"},
		{EmployeeID: "EMP-2", Age: "150", Salary: "-50000", HireDate: "2030-12-25", Status: "Terminated"},
		{EmployeeID: "EMP-1", Department: "Sales", Age: "34", Salary: "95000", HireDate: "2020-01-15", Status: "Active"},
	}

	result := Run(raw)

	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(result.Records) != 2 {
		t.Errorf("records = %d, want 2 after deduplication", len(result.Records))
	}
	if len(result.Issues) != 4 {
		t.Errorf("issues = %d, want 4 for EMP-2", len(result.Issues))
	}
	if result.KPIs.Headcount != 1 {
		t.Errorf("headcount = %d, want 1", result.KPIs.Headcount)
	}
	if result.KPIs.AttritionRate != 50.0 {
		t.Errorf("attrition = %v, want 50.0", result.KPIs.AttritionRate)
	}
}

func TestRun_DistinctRunIDs(t *testing.T) {
	a := Run(nil)
	b := Run(nil)
	if a.RunID == b.RunID {
		t.Errorf("consecutive runs share RunID %s", a.RunID)
	}
}

func TestRun_Empty(t *testing.T) {
	result := Run(nil)

	if len(result.Records) != 0 || len(result.Issues) != 0 {
		t.Errorf("empty input produced records=%d issues=%d", len(result.Records), len(result.Issues))
	}
	if result.KPIs.AttritionRate != 0.0 {
		t.Errorf("attrition = %v, want 0.0 for empty dataset", result.KPIs.AttritionRate)
	}
	if result.KPIs.AverageAge.Valid {
		t.Error("average age should be undefined for empty dataset")
	}
}
