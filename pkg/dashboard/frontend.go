package dashboard

import "net/http"

func (d *Dashboard) serveFrontend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Giveaway Hunter</title>
<style>
  body { font-family: -apple-system, sans-serif; background: #0d1117; color: #c9d1d9; margin: 0; padding: 24px; }
  h1 { font-size: 20px; }
  .cards { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 24px; }
  .card { background: #161b22; border: 1px solid #30363d; border-radius: 8px; padding: 16px 24px; min-width: 140px; }
  .card .num { font-size: 28px; font-weight: 700; color: #58a6ff; }
  .card .label { font-size: 12px; color: #8b949e; text-transform: uppercase; }
  table { width: 100%; border-collapse: collapse; background: #161b22; border-radius: 8px; }
  th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #30363d; font-size: 13px; }
  th { color: #8b949e; }
  .won { color: #3fb950; }
</style>
</head>
<body>
<h1>🎁 Giveaway Hunter</h1>
<div class="cards" id="cards"></div>
<table>
  <thead><tr><th>Tweet</th><th>Author</th><th>Token</th><th>Price</th><th>Value</th><th>Status</th></tr></thead>
  <tbody id="rows"></tbody>
</table>
<script>
async function refresh() {
  const stats = await (await fetch('/api/stats')).json();
  const t = stats.totals;
  document.getElementById('cards').innerHTML = [
    ['Giveaways', t.total_giveaways],
    ['Participated', t.participated],
    ['Wins', t.wins],
    ['Win rate', stats.win_rate],
    ['Accounts', t.active_accounts],
  ].map(([l, n]) => '<div class="card"><div class="num">' + n + '</div><div class="label">' + l + '</div></div>').join('');

  const giveaways = await (await fetch('/api/giveaways?limit=50')).json() || [];
  document.getElementById('rows').innerHTML = giveaways.map(g =>
    '<tr><td>' + g.tweet_id + '</td><td>@' + g.author_username + '</td><td>' + (g.token_symbol || '—') +
    '</td><td>' + (g.token_price_usd != null ? '$' + g.token_price_usd.toFixed(4) : '—') +
    '</td><td>' + (g.estimated_value_usd != null ? '$' + g.estimated_value_usd.toFixed(2) : '—') +
    '</td><td>' + (g.won ? '<span class="won">won</span>' : g.participated ? 'entered' : 'pending') + '</td></tr>'
  ).join('');
}
refresh();
setInterval(refresh, 15000);
</script>
</body>
</html>`
