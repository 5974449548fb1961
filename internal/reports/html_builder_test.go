package reports

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConvertMarkdownToHTML(t *testing.T) {
	hb := NewHTMLBuilder()

	out, err := hb.ConvertMarkdownToHTML("# Conditions Summary\n\n- **ACTIVE FIRE**: Fire #G1\n")
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if !strings.Contains(out, "<h1 id=\"conditions-summary\">Conditions Summary</h1>") {
		t.Errorf("missing heading: %s", out)
	}
	if !strings.Contains(out, "<strong>ACTIVE FIRE</strong>") {
		t.Errorf("missing bold label: %s", out)
	}
}

func TestConvertMarkdownPassesRawHTML(t *testing.T) {
	hb := NewHTMLBuilder()

	out, err := hb.ConvertMarkdownToHTML(`<div id="chart-wind-gauge"></div>`)
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	if !strings.Contains(out, `<div id="chart-wind-gauge">`) {
		t.Errorf("raw HTML should pass through unescaped: %s", out)
	}
}

func TestBuildPage(t *testing.T) {
	hb := NewHTMLBuilder()
	updated := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	page := hb.BuildPage("<h1>Summary</h1>", "Calm day expected.", "<div>map</div>", "<div>gauge</div>", updated)

	for _, want := range []string{
		"<title>WildWatch Conditions</title>",
		"echarts.min.js",
		"<h1>Summary</h1>",
		"Calm day expected.",
		"<div>map</div>",
		"<div>gauge</div>",
		"Last updated: 2026-08-10 12:00:00 UTC",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestBuildPageNoOutlookNoTimestamp(t *testing.T) {
	hb := NewHTMLBuilder()

	page := hb.BuildPage("<p>content</p>", "", "", "", time.Time{})

	if strings.Contains(page, "Outlook") {
		t.Error("empty outlook should omit the section")
	}
	if !strings.Contains(page, "Last updated: never") {
		t.Error("zero timestamp should render as never")
	}
}

func TestPanelBuilderBuild(t *testing.T) {
	pb := NewPanelBuilder(nil)

	page, err := pb.Build(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for _, want := range []string{
		"Conditions Summary",
		"ACTIVE FIRE",
		"Alerts Near Map Center",
		"chart-wind-gauge",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("panel missing %q", want)
		}
	}
	if strings.Contains(page, "Outlook") {
		t.Error("panel should not contain an outlook without an LLM client")
	}
}
