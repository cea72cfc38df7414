package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the single-page sourcing command center. The page is
// fully static; all data arrives through the datastar SSE endpoints after
// load.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, dashboardHTML)
		return err
	})
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Global Sourcing Command Center</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
:root { --bg: #0f1117; --panel: #1a1d27; --border: #2a2e3d; --text: #e4e6ef; --muted: #8a8fa3; --accent: #4f8cff; --favor: #2ecc71; --remain: #e67e22; --error: #e74c3c; }
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: var(--bg); color: var(--text); }
header { padding: 1.25rem 2rem; border-bottom: 1px solid var(--border); }
header h1 { margin: 0; font-size: 1.3rem; font-weight: 600; }
header p { margin: 0.25rem 0 0; color: var(--muted); font-size: 0.85rem; }
main { display: grid; grid-template-columns: 320px 1fr; gap: 1.5rem; padding: 1.5rem 2rem; max-width: 1400px; margin: 0 auto; }
.panel { background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 1.25rem; }
.panel h2 { margin: 0 0 1rem; font-size: 0.95rem; text-transform: uppercase; letter-spacing: 0.05em; color: var(--muted); }
label { display: block; margin: 0.75rem 0 0.25rem; font-size: 0.8rem; color: var(--muted); }
select, input { width: 100%; padding: 0.5rem; background: var(--bg); color: var(--text); border: 1px solid var(--border); border-radius: 4px; font-size: 0.9rem; }
.option-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 0.75rem; }
.checkbox-row { display: flex; align-items: center; gap: 0.5rem; margin-top: 0.75rem; }
.checkbox-row input { width: auto; }
.checkbox-row label { margin: 0; }
.results { display: flex; flex-direction: column; gap: 1.5rem; }
.verdict { margin: 0 0 0.5rem; font-size: 1.15rem; }
.verdict.favor { color: var(--favor); }
.verdict.remain { color: var(--remain); }
.drivers { margin: 0.25rem 0 0; padding-left: 1.25rem; color: var(--muted); }
.drivers li { margin: 0.25rem 0; }
.error { color: var(--error); }
.modern-table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
.modern-table th, .modern-table td { padding: 0.5rem 0.75rem; text-align: left; border-bottom: 1px solid var(--border); }
.modern-table th { color: var(--muted); font-weight: 500; }
.modern-table .total-row td { border-top: 2px solid var(--border); border-bottom: none; }
canvas { max-height: 360px; }
</style>
</head>
<body>
<header>
<h1>Global Sourcing Command Center</h1>
<p>Total cost of ownership comparison across sourcing lanes</p>
</header>
<main data-signals="{products: [], chartData: null, savings: 0, sku: '', origin: 'Vietnam', aMode: 'ocean', bMode: 'ocean', interestRate: '', excludeFob: false}"
      data-on-load="@get('/sse/products')">
<aside class="panel">
<h2>Scenario</h2>
<label for="sku">Product</label>
<select id="sku" data-bind-sku>
<option value="">Select a product…</option>
<template data-for="p in $products"><option data-attr-value="p" data-text="p"></option></template>
</select>
<label for="origin">Alternate origin</label>
<select id="origin" data-bind-origin>
<option>Vietnam</option>
<option>India</option>
<option>Mexico</option>
<option>Thailand</option>
<option>Malaysia</option>
</select>
<div class="option-grid">
<div>
<label for="a-mode">Option A mode</label>
<select id="a-mode" data-bind-a-mode>
<option value="ocean">Ocean</option>
<option value="air">Air</option>
</select>
</div>
<div>
<label for="b-mode">Option B mode</label>
<select id="b-mode" data-bind-b-mode>
<option value="ocean">Ocean</option>
<option value="air">Air</option>
</select>
</div>
</div>
<label for="interest-rate">Annual interest rate (fraction)</label>
<input id="interest-rate" type="text" placeholder="0.12" data-bind-interest-rate>
<div class="checkbox-row">
<input id="exclude-fob" type="checkbox" data-bind-exclude-fob>
<label for="exclude-fob">Exclude FOB from chart</label>
</div>
<button style="margin-top:1rem;width:100%;padding:0.6rem;background:var(--accent);border:none;border-radius:4px;color:#fff;font-size:0.9rem;cursor:pointer"
        data-on-click="@get('/sse/evaluate?sku=' + encodeURIComponent($sku) + '&origin=' + encodeURIComponent($origin) + '&a_mode=' + $aMode + '&b_mode=' + $bMode + '&interest_rate=' + $interestRate + '&exclude_fob=' + $excludeFob)">
Evaluate
</button>
</aside>
<section class="results">
<div class="panel">
<h2>Strategic Insight</h2>
<div id="insight-content"><p style="color:var(--muted)">Pick a product and press Evaluate.</p></div>
</div>
<div class="panel">
<h2>Cost Composition</h2>
<canvas id="tco-chart" data-effect="renderChart($chartData)"></canvas>
</div>
<div class="panel">
<h2>Unit Cost Breakdown</h2>
<div id="breakdown-content"></div>
</div>
</section>
</main>
<script>
let chart = null;
window.renderChart = function(data) {
  if (!data) return;
  const ctx = document.getElementById('tco-chart');
  const config = {
    type: 'bar',
    data: {
      labels: data.categories,
      datasets: [
        { label: data.option_a_label, data: data.option_a, backgroundColor: '#4f8cff' },
        { label: data.option_b_label, data: data.option_b, backgroundColor: '#2ecc71' }
      ]
    },
    options: {
      responsive: true,
      scales: { y: { ticks: { callback: v => '$' + v } } }
    }
  };
  if (chart) { chart.destroy(); }
  chart = new Chart(ctx, config);
};
</script>
</body>
</html>
`
