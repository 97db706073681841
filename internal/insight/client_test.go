package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpulse/internal/config"
	"hrpulse/internal/hr"
)

func testKPIs() hr.KPISnapshot {
	return hr.KPISnapshot{
		Headcount:     42,
		DeptHeadcount: map[string]int{"Engineering": 42},
		AttritionRate: 12.5,
		AverageAge:    pgtype.Float8{Float64: 38.2, Valid: true},
		AverageTenure: 5.1,
	}
}

func testIssues() []hr.Issue {
	return []hr.Issue{
		{EmployeeID: "EMP-1", Type: hr.IssueNegativeSalary, Value: "-50000", Severity: hr.SeverityCritical},
	}
}

func testConfig(baseURL, key string) config.InsightConfig {
	return config.InsightConfig{
		APIKey:    key,
		BaseURL:   baseURL,
		Model:     "claude-3-5-sonnet-20240620",
		MaxTokens: 1200,
		Timeout:   5 * time.Second,
	}
}

func TestAnalyze_DisabledWithoutKey(t *testing.T) {
	c := New(testConfig("https://api.example.com", ""))

	got := c.Analyze(context.Background(), testIssues(), testKPIs())

	assert.Equal(t, DisabledMessage, got)
}

func TestAnalyze_Success(t *testing.T) {
	var captured messagesRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "Workforce health is stable. "},
				{"type": "text", "text": "Watch attrition in Sales."},
			},
		})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL, "sk-test"))
	got := c.Analyze(context.Background(), testIssues(), testKPIs())

	assert.Equal(t, "Workforce health is stable. Watch attrition in Sales.", got)
	assert.Equal(t, "claude-3-5-sonnet-20240620", captured.Model)
	assert.Equal(t, 1200, captured.MaxTokens)
	assert.Zero(t, captured.Temperature)
	require.Len(t, captured.Messages, 1)
	assert.Contains(t, captured.Messages[0].Content, "NegativeSalary")
	assert.Contains(t, captured.Messages[0].Content, "Attrition Rate: 12.50%")
}

func TestAnalyze_APIErrorDegradesToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL, "sk-bad"))
	got := c.Analyze(context.Background(), testIssues(), testKPIs())

	assert.Contains(t, got, "Error generating insights")
	assert.Contains(t, got, "invalid x-api-key")
}

func TestAnalyze_NetworkFailureDegradesToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(testConfig(srv.URL, "sk-test"))
	got := c.Analyze(context.Background(), testIssues(), testKPIs())

	assert.Contains(t, got, "Error generating insights")
}

func TestBuildPrompt_TruncatesIssues(t *testing.T) {
	issues := make([]hr.Issue, 60)
	for i := range issues {
		issues[i] = hr.Issue{EmployeeID: "EMP-1", Type: hr.IssueUnassignedDepartment, Value: "Unassigned", Severity: hr.SeverityLow}
	}

	prompt := buildPrompt(issues, testKPIs())

	assert.Equal(t, maxPromptIssues, strings.Count(prompt, "UnassignedDepartment"))
}

func TestBuildPrompt_UndefinedAverageAge(t *testing.T) {
	kpis := testKPIs()
	kpis.AverageAge = pgtype.Float8{}

	prompt := buildPrompt(nil, kpis)

	assert.Contains(t, prompt, "Avg Workforce Age: undefined")
}
