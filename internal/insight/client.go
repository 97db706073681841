// Package insight generates a narrative executive summary of pipeline
// results using the Anthropic Messages API.
//
// The narrative is a convenience on top of the pipeline's own outputs, so
// this package must degrade gracefully: a missing API key yields a
// placeholder message and a failed request yields fallback text carrying the
// error. Neither ever blocks delivery of KPIs or issues.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hrpulse/internal/config"
	"hrpulse/internal/hr"
	"hrpulse/internal/logging"
)

// DisabledMessage is returned when no API key is configured.
const DisabledMessage = "AI analysis disabled: set ANTHROPIC_API_KEY to enable automatic executive insights."

// maxPromptIssues caps how many issues are quoted in the prompt to avoid
// token overflow while keeping a representative sample.
const maxPromptIssues = 25

const apiVersion = "2023-06-01"

// Client calls the Anthropic Messages API.
type Client struct {
	cfg  config.InsightConfig
	http *http.Client
}

// New creates a client from config. The client is usable even when no API
// key is configured; Analyze then returns the disabled placeholder.
func New(cfg config.InsightConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// messagesRequest is the Anthropic Messages API request body.
type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the subset of the response we consume.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze generates an executive summary of the identified issues and KPI
// snapshot. It never returns an error to the caller: failures degrade to
// explanatory text so the dashboard and report always have something to
// show.
func (c *Client) Analyze(ctx context.Context, issues []hr.Issue, kpis hr.KPISnapshot) string {
	if !c.cfg.Enabled() {
		return DisabledMessage
	}

	logger := logging.FromContext(ctx)

	body, err := json.Marshal(messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		// Zero temperature keeps the analysis objective and repeatable.
		Temperature: 0,
		Messages: []message{
			{Role: "user", Content: buildPrompt(issues, kpis)},
		},
	})
	if err != nil {
		logger.Error("insight request marshal failed", "error", err)
		return fmt.Sprintf("Error generating insights: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		logger.Error("insight request build failed", "error", err)
		return fmt.Sprintf("Error generating insights: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	logger.Info("requesting insight analysis", "model", c.cfg.Model, "issues", len(issues))

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("insight request failed", "error", err)
		return fmt.Sprintf("Error generating insights: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("insight response read failed", "error", err)
		return fmt.Sprintf("Error generating insights: %v", err)
	}

	var parsed messagesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		logger.Error("insight response parse failed", "error", err, "status", resp.StatusCode)
		return fmt.Sprintf("Error generating insights: unexpected response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		logger.Error("insight request rejected", "status", resp.StatusCode, "message", msg)
		return fmt.Sprintf("Error generating insights: %s", msg)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "Error generating insights: empty response"
	}

	return sb.String()
}

// buildPrompt constructs a high-context prompt for senior-level HR analysis
// from the issue sample and KPI snapshot.
func buildPrompt(issues []hr.Issue, kpis hr.KPISnapshot) string {
	sample := issues
	if len(sample) > maxPromptIssues {
		sample = sample[:maxPromptIssues]
	}

	var lines strings.Builder
	for _, i := range sample {
		fmt.Fprintf(&lines, "- %s | Value: %s | Severity: %s (EMP: %s)\n",
			i.Type, i.Value, i.Severity, i.EmployeeID)
	}

	avgAge := "undefined"
	if kpis.AverageAge.Valid {
		avgAge = fmt.Sprintf("%.1f", kpis.AverageAge.Float64)
	}

	return fmt.Sprintf(`Act as a senior people-analytics strategy consultant.

Objective: analyze the provided HR data indicators and synthesize an executive-level risk summary.

### KPI Snapshot
- Current Headcount: %d
- Attrition Rate: %.2f%%
- Avg Workforce Age: %s
- Avg Organizational Tenure: %.1f years

### Identified Data Anomaly Stream
%s
### Requirements for Response
1. Data Integrity Audit: summarize the quality of the incoming data stream.
2. Risk Identification: identify 3 strategic risks (e.g. turnover contagion, demographic gaps).
3. Strategic Recommendations: provide 4 actionable, business-centric recommendations.

Tone: professional, data-driven, direct.
`, kpis.Headcount, kpis.AttritionRate, avgAge, kpis.AverageTenure, lines.String())
}
