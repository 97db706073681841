package hr

// metrics.go computes aggregate workforce statistics from canonical records.
//
// The formulas are part of the external contract and must not drift:
// downstream consumers compare snapshots across deployments. Degenerate
// inputs return 0.0 where a neutral default exists (attrition, tenure) and
// an explicit undefined marker where it does not (average age).

import (
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// daysPerYear converts tenure days to years. 365.25 accounts for leap
// years; a 365-day divisor overstates tenure by ~0.27% per year of service.
const daysPerYear = 365.25

// Engine computes KPI snapshots. Now is the clock used for tenure; tests
// can freeze it.
type Engine struct {
	Now func() time.Time
}

// NewEngine returns an Engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

// ComputeKPIs is a convenience wrapper using the wall clock.
func ComputeKPIs(records []Employee) KPISnapshot {
	return NewEngine().ComputeKPIs(records)
}

// ComputeKPIs computes a fresh snapshot from canonical records. The input
// is read-only; nothing is cached between calls.
func (e *Engine) ComputeKPIs(records []Employee) KPISnapshot {
	return KPISnapshot{
		Headcount:     headcount(records),
		DeptHeadcount: deptHeadcount(records),
		AttritionRate: attritionRate(records),
		AverageAge:    averageAge(records),
		AverageTenure: e.averageTenureYears(records),
	}
}

// headcount counts active records.
func headcount(records []Employee) int {
	n := 0
	for _, r := range records {
		if r.IsActive == 1 {
			n++
		}
	}
	return n
}

// deptHeadcount groups active records by department. Inactive records are
// excluded from the breakdown entirely.
func deptHeadcount(records []Employee) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		if r.IsActive == 1 {
			counts[r.Department]++
		}
	}
	return counts
}

// attritionRate is terminated / total as a percentage, 2 decimals.
// 0.0 when the record set is empty.
func attritionRate(records []Employee) float64 {
	total := len(records)
	if total == 0 {
		return 0.0
	}

	terminated := 0
	for _, r := range records {
		if r.Status == StatusTerminated {
			terminated++
		}
	}

	return round(float64(terminated)/float64(total)*100, 2)
}

// averageAge is the mean age over all records, active and inactive, with
// missing ages excluded from the average. When no record carries a valid
// age the result is explicitly undefined, never silently 0.
func averageAge(records []Employee) pgtype.Float8 {
	sum := 0.0
	n := 0
	for _, r := range records {
		if r.Age.Valid {
			sum += r.Age.Float64
			n++
		}
	}

	if n == 0 {
		return pgtype.Float8{}
	}

	return pgtype.Float8{Float64: round(sum/float64(n), 1), Valid: true}
}

// averageTenureYears is the mean tenure of active records in years, 1
// decimal. Active records without a valid hire date are excluded; 0.0 when
// nothing remains to average.
func (e *Engine) averageTenureYears(records []Employee) float64 {
	now := e.Now()

	sumDays := 0.0
	n := 0
	for _, r := range records {
		if r.IsActive != 1 || !r.HireDate.Valid {
			continue
		}
		sumDays += now.Sub(r.HireDate.Time).Hours() / 24
		n++
	}

	if n == 0 {
		return 0.0
	}

	return round(sumDays/float64(n)/daysPerYear, 1)
}

// round rounds v to the given number of decimal places.
func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
