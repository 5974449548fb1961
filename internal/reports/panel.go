package reports

import (
	"context"

	"wildwatch/internal/charts"
	"wildwatch/internal/llm"
	"wildwatch/internal/logger"
	"wildwatch/internal/models"
)

const chartUnavailable = `<div class="chart-container"><p>Chart unavailable.</p></div>`

// PanelBuilder assembles the served summary page from the current report:
// markdown content, the alert map, the wind gauge, and the optional LLM
// outlook paragraph.
type PanelBuilder struct {
	html      *HTMLBuilder
	charts    *charts.ChartGenerator
	llmClient *llm.OpenAIClient
	log       *logger.Logger
}

// NewPanelBuilder creates a panel builder. llmClient may be disabled; the
// outlook section is skipped in that case.
func NewPanelBuilder(llmClient *llm.OpenAIClient) *PanelBuilder {
	return &PanelBuilder{
		html:      NewHTMLBuilder(),
		charts:    charts.NewChartGenerator(),
		llmClient: llmClient,
		log:       logger.Global().WithComponent("reports"),
	}
}

// Build renders the full HTML page for a report. Chart and outlook failures
// degrade to placeholders so the panel always serves.
func (p *PanelBuilder) Build(ctx context.Context, report models.ConditionsReport) (string, error) {
	content, err := p.html.ConvertMarkdownToHTML(BuildMarkdown(report))
	if err != nil {
		return "", err
	}

	mapChart, err := p.charts.AlertMapChart(report)
	if err != nil {
		p.log.Warn("alert map chart failed", map[string]interface{}{"error": err.Error()})
		mapChart = chartUnavailable
	}

	windGauge := ""
	if report.Weather != nil {
		snippet, err := p.charts.WindGaugeSnippet(report.Weather)
		if err != nil {
			p.log.Warn("wind gauge failed", map[string]interface{}{"error": err.Error()})
		} else {
			windGauge = snippet.HTML
		}
	}

	outlook := ""
	if p.llmClient != nil && p.llmClient.Enabled() && !report.Loading {
		text, err := p.llmClient.SummarizeConditions(ctx, report)
		if err != nil {
			p.log.Warn("outlook generation failed", map[string]interface{}{"error": err.Error()})
		} else {
			outlook = text
		}
	}

	return p.html.BuildPage(content, outlook, mapChart, windGauge, report.UpdatedAt), nil
}
