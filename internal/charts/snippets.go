package charts

import (
	"encoding/json"
	"fmt"
)

// ChartSnippet is an embeddable ECharts fragment: a root div plus the
// script that initializes the chart inside it.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

// renderOptionSnippet wraps a raw ECharts option map into a div+script
// fragment the summary panel can inline. The panel page loads the echarts
// runtime once; snippets only call echarts.init.
func renderOptionSnippet(id, title string, width, height int, option map[string]interface{}) (ChartSnippet, error) {
	raw, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to encode chart option: %w", err)
	}

	html := fmt.Sprintf(`<div class="chart-container">
<div id="%s" style="width:%dpx;height:%dpx;"></div>
<script type="text/javascript">
(function() {
	var chart = echarts.init(document.getElementById('%s'));
	chart.setOption(%s);
})();
</script>
</div>`, id, width, height, id, string(raw))

	return ChartSnippet{ID: id, Title: title, HTML: html}, nil
}
