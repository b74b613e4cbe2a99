package ai

import (
	"context"
	"time"
)

// AIReportResponse represents the structure of AI-generated reports
type AIReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generatedAt"`
	AIEnabled   bool       `json:"aiEnabled"`
}

type ReportData struct {
	RawData    interface{} `json:"rawData"`
	AIInsights string      `json:"aiInsights,omitempty"`
	Summary    string      `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

// CatalogReport always returns the raw stats. Insights are added when the
// reporter is enabled; an AI failure is recorded in the report, not returned.
func (r *Reporter) CatalogReport(ctx context.Context, stats CatalogStats) *AIReportResponse {
	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now().UTC(),
		AIEnabled:   r.Enabled(),
		Data: ReportData{
			RawData: stats,
			Summary: "Raw catalog data (AI insights unavailable)",
		},
	}

	if !r.Enabled() {
		return response
	}

	insights, err := r.generateCompletion(ctx, CatalogReportSystemPrompt, formatCatalogPrompt(stats))
	if err != nil {
		response.Data.Error = "AI analysis failed: " + err.Error()
		return response
	}
	response.Data.AIInsights = insights
	response.Data.Summary = "AI-generated catalog insights and recommendations"
	return response
}
