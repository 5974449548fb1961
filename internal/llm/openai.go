package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wildwatch/internal/logger"
	"wildwatch/internal/models"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a concise weather and wildfire briefing writer.
Given current conditions and active alerts, write a short plain-language
outlook (2-4 sentences) for a resident at the given location. Mention active
fires and severe weather first. Do not invent data.`

// OpenAIClient generates the optional outlook paragraph for the summary
// panel. With no API key configured the client is disabled and the panel
// simply omits the paragraph.
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewOpenAIClient creates a client; an empty apiKey yields a disabled one.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	c := &OpenAIClient{
		model: model,
		log:   logger.Global().WithComponent("llm"),
	}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

// Enabled reports whether an API key was configured.
func (c *OpenAIClient) Enabled() bool {
	return c.client != nil
}

// SummarizeConditions asks the model for a short outlook paragraph.
func (c *OpenAIClient) SummarizeConditions(ctx context.Context, report models.ConditionsReport) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("OpenAI client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(report)},
		},
		MaxTokens:   400,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	c.log.Debug("outlook generated", map[string]interface{}{"model": c.model})
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt flattens the report into a compact textual form.
func buildPrompt(report models.ConditionsReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %.4f, %.4f\n", report.Coordinate.Latitude, report.Coordinate.Longitude)

	if w := report.Weather; w != nil {
		descriptions := make([]string, 0, len(w.Conditions))
		for _, c := range w.Conditions {
			descriptions = append(descriptions, c.Description)
		}
		fmt.Fprintf(&b, "Weather: %.1f°C (feels like %.1f°C), humidity %.0f%%, wind %.1f m/s, %s\n",
			w.Temperature, w.FeelsLike, w.Humidity, w.WindSpeed, strings.Join(descriptions, ", "))
	} else {
		b.WriteString("Weather: unavailable\n")
	}

	fmt.Fprintf(&b, "Active fires: %d\n", report.ActiveFireCount())
	fmt.Fprintf(&b, "Alerts (%d):\n", len(report.Alerts))
	for _, a := range report.Alerts {
		// First line of the description is enough context per alert.
		line := a.Description
		if idx := strings.IndexByte(line, '\n'); idx != -1 {
			line = line[:idx]
		}
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", a.Category, line, a.Source)
	}
	return b.String()
}
