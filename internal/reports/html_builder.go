package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// echartsAssetURL is the runtime the inline gauge snippets expect; the
// scatter chart rendered by go-echarts references the same host.
const echartsAssetURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

// HTMLBuilder converts the markdown summary into the served panel page.
type HTMLBuilder struct {
	goldmark goldmark.Markdown
}

// NewHTMLBuilder creates an HTML builder.
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // chart snippets are raw HTML
		),
	)
	return &HTMLBuilder{goldmark: md}
}

// ConvertMarkdownToHTML converts markdown to an HTML fragment.
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildPage wraps the content and chart fragments into a complete document.
func (h *HTMLBuilder) BuildPage(content, outlook, mapChart, windGauge string, updatedAt time.Time) string {
	timestamp := "never"
	if !updatedAt.IsZero() {
		timestamp = updatedAt.Format("2006-01-02 15:04:05 UTC")
	}

	outlookSection := ""
	if outlook != "" {
		outlookSection = fmt.Sprintf(`<div class="card outlook"><h3>Outlook</h3><p>%s</p></div>`, outlook)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>WildWatch Conditions</title>
    <script src="%s"></script>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.5;
            color: #333;
            max-width: 1000px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .content, .card, .chart-container {
            background: white;
            padding: 24px;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            margin-bottom: 24px;
        }
        .outlook { border-left: 4px solid #fd7e14; }
        h1, h2, h3 { color: #333; }
        h2 { border-bottom: 2px solid #fd7e14; padding-bottom: 4px; }
        blockquote { border-left: 4px solid #dc3545; margin: 0; padding-left: 16px; color: #842029; }
        .footer { text-align: center; color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="content">%s</div>
    %s
    %s
    %s
    <div class="footer">Last updated: %s</div>
</body>
</html>`, echartsAssetURL, content, outlookSection, mapChart, windGauge, timestamp)
}
