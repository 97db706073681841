package dataset

// generate.go produces a realistic (but synthetic) HR dataset with embedded
// anomalies, for demos and pipeline testing. Generation is seeded and fully
// deterministic for a given profile.

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"hrpulse/internal/hr"
)

const dateLayout = "2006-01-02"

// Profile controls synthetic dataset generation. It can be loaded from a
// YAML file to customize demo datasets.
type Profile struct {
	// Records is the number of base records before anomaly injection.
	Records int `yaml:"records"`

	// Seed drives the deterministic random source.
	Seed int64 `yaml:"seed"`

	// Departments to draw from.
	Departments []string `yaml:"departments"`

	// TerminatedShare is the probability a record is Terminated.
	TerminatedShare float64 `yaml:"terminated_share"`

	// Anomalies controls whether known-bad records are injected: a negative
	// salary, an unrealistic age, a missing department, a future hire date,
	// and one duplicated row.
	Anomalies bool `yaml:"anomalies"`
}

// DefaultProfile mirrors the standard demo dataset.
func DefaultProfile() Profile {
	return Profile{
		Records:         500,
		Seed:            42,
		Departments:     []string{"Engineering", "Sales", "HR", "Marketing", "Operations", "Finance"},
		TerminatedShare: 0.15,
		Anomalies:       true,
	}
}

// LoadProfile reads a generation profile from a YAML file, applying defaults
// for unset fields.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if p.Records < 0 {
		return p, fmt.Errorf("profile records must be >= 0")
	}
	if len(p.Departments) == 0 {
		return p, fmt.Errorf("profile needs at least one department")
	}

	return p, nil
}

// Generate produces a synthetic raw dataset from a profile.
func Generate(p Profile) []hr.RawRecord {
	rng := rand.New(rand.NewSource(p.Seed))
	baseHire := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

	records := make([]hr.RawRecord, p.Records)
	for i := range records {
		status := hr.StatusActive
		if rng.Float64() < p.TerminatedShare {
			status = hr.StatusTerminated
		}

		hire := baseHire.AddDate(0, 0, rng.Intn(3000))

		termination := ""
		if status == hr.StatusTerminated {
			termination = hire.AddDate(0, 0, 30+rng.Intn(970)).Format(dateLayout)
		}

		records[i] = hr.RawRecord{
			EmployeeID:      fmt.Sprintf("EMP-%d", 1000+i),
			Name:            fmt.Sprintf("Employee %d", i),
			Department:      p.Departments[rng.Intn(len(p.Departments))],
			Age:             strconv.Itoa(22 + rng.Intn(43)),
			Salary:          strconv.Itoa(40000 + rng.Intn(110000)),
			HireDate:        hire.Format(dateLayout),
			TerminationDate: termination,
			Status:          string(status),
		}
	}

	if p.Anomalies {
		records = injectAnomalies(records)
	}

	return records
}

// injectAnomalies plants known-bad records exercising every cleaning and
// validation rule.
func injectAnomalies(records []hr.RawRecord) []hr.RawRecord {
	if len(records) > 0 {
		records[0].Salary = "-50000"
	}
	if len(records) > 1 {
		records[1].Age = "150"
	}
	if len(records) > 2 {
		records[2].Department = ""
	}
	if len(records) > 3 {
		records[3].HireDate = "2030-12-25"
	}
	if len(records) > 5 {
		records = append(records, records[5])
	}
	return records
}
