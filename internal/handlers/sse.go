package handlers

import (
	"encoding/json"
	"html"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sourcing-dashboard/internal/catalog"
	"sourcing-dashboard/internal/models"
)

var insightTemplate = template.Must(template.New("insight").Parse(`
<div id="insight-content">
<h3 class="verdict {{if .FavorAlternate}}favor{{else}}remain{{end}}">{{.Verdict}}</h3>
<p><strong>Reason:</strong> {{.Reason}}</p>
<p><strong>Key Drivers:</strong></p>
<ul class="drivers">
{{range .Drivers}}<li>{{.}}</li>
{{end}}</ul>
</div>`))

var breakdownTemplate = template.Must(template.New("breakdown").Parse(`
<div id="breakdown-content">
<table class="modern-table">
<thead><tr><th>Cost Line</th><th>{{.OptionALabel}}</th><th>{{.OptionBLabel}}</th></tr></thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Category}}</td>
<td>${{printf "%.2f" .OptionA}}</td>
<td>${{printf "%.2f" .OptionB}}</td>
</tr>{{end}}
<tr class="total-row">
<td><strong>Total TCO</strong></td>
<td><strong>${{printf "%.2f" .TotalA}}</strong></td>
<td><strong>${{printf "%.2f" .TotalB}}</strong></td>
</tr>
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

func NewSSEHandlers(cat *catalog.Catalog, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		catalog: cat,
		logger:  logger,
	}
}

type breakdownRow struct {
	Category string
	OptionA  float64
	OptionB  float64
}

type breakdownView struct {
	OptionALabel string
	OptionBLabel string
	Rows         []breakdownRow
	TotalA       float64
	TotalB       float64
}

func renderBreakdown(resp models.EvaluateResponse) (string, error) {
	// Always render the full table; the exclude-FOB toggle only affects the
	// chart scaling, not the numbers.
	categories := models.ChartCategories(false)
	seriesA := resp.OptionA.Series(false)
	seriesB := resp.OptionB.Series(false)

	view := breakdownView{
		OptionALabel: resp.Chart.OptionALabel,
		OptionBLabel: resp.Chart.OptionBLabel,
		TotalA:       resp.OptionA.Total,
		TotalB:       resp.OptionB.Total,
	}
	for i, cat := range categories {
		view.Rows = append(view.Rows, breakdownRow{Category: cat, OptionA: seriesA[i], OptionB: seriesB[i]})
	}

	var buf strings.Builder
	err := breakdownTemplate.Execute(&buf, view)
	return buf.String(), err
}

func renderInsight(insight models.Insight) (string, error) {
	var buf strings.Builder
	err := insightTemplate.Execute(&buf, insight)
	return buf.String(), err
}

// HandleEvaluate is the dashboard's live evaluation surface: one request
// patches the chart signals, the breakdown table, and the insight panel.
func (h *SSEHandlers) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	req, appErr := parseEvaluateQuery(r)
	if appErr == nil {
		var resp models.EvaluateResponse
		if resp, appErr = evaluate(h.catalog, req); appErr == nil {
			h.patchEvaluation(w, sse, resp)
			return
		}
	}

	h.logger.Warn("sse evaluation rejected", "error", appErr)
	sse.PatchElements(`<div id="insight-content" class="error">` + html.EscapeString(appErr.Message) + `</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) patchEvaluation(w http.ResponseWriter, sse *datastar.ServerSentEventGenerator, resp models.EvaluateResponse) {
	signals, err := json.Marshal(map[string]any{
		"chartData": resp.Chart,
		"savings":   resp.Insight.SavingsPerUnit,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(signals)

	breakdownHTML, err := renderBreakdown(resp)
	if err != nil {
		h.logger.Error("render breakdown table", "error", err)
		return
	}
	sse.PatchElements(breakdownHTML)

	insightHTML, err := renderInsight(resp.Insight)
	if err != nil {
		h.logger.Error("render insight panel", "error", err)
		return
	}
	sse.PatchElements(insightHTML)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleProducts seeds the dashboard's SKU selector.
func (h *SSEHandlers) HandleProducts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	signals, err := json.Marshal(map[string]any{
		"products": h.catalog.Products(),
	})
	if err != nil {
		h.logger.Error("marshal products signal", "error", err)
		return
	}
	sse.PatchSignals(signals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
