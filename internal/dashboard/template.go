package dashboard

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Bet Tracker</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
.kpis { display: flex; gap: 2rem; margin: 1rem 0; }
.kpi { border: 1px solid #ccc; padding: 1rem; min-width: 8rem; }
.kpi .value { font-size: 1.4rem; font-weight: bold; }
.neg { color: #b00; }
.pos { color: #080; }
.forms { display: flex; gap: 4rem; margin-top: 2rem; }
.flash { background: #eef; padding: 0.5rem 1rem; }
form label { display: block; margin: 0.3rem 0; }
</style>
</head>
<body>
<h1>Bet Tracker</h1>

{{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}

<form method="get" action="/">
  From <input type="date" name="from" value="{{.Filters.From}}">
  To <input type="date" name="to" value="{{.Filters.To}}">
  Sport <select name="sport">
    <option value="">(all)</option>
    {{range .Sports}}<option value="{{.}}" {{if eq . $.Filters.Sport}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  Book <select name="book">
    <option value="">(all)</option>
    {{range .Books}}<option value="{{.}}" {{if eq . $.Filters.Book}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  Result <select name="result">
    <option value="">(all)</option>
    {{range .Results}}<option {{if eq . $.Filters.Result}}selected{{end}}>{{.}}</option>{{end}}
  </select>
  <button type="submit">Filter</button>
</form>

<div class="kpis">
  <div class="kpi"><div>Total Stake</div><div class="value">{{printf "%.2f" .KPIs.TotalStake}}</div></div>
  <div class="kpi"><div>Total Profit</div><div class="value">{{printf "%.2f" .KPIs.TotalProfit}}</div></div>
  <div class="kpi"><div>ROI</div><div class="value">{{printf "%.1f" (pct .KPIs.ROI)}}%</div></div>
  <div class="kpi"><div>Win Rate</div><div class="value">{{printf "%.1f" (pct .KPIs.WinRate)}}%</div></div>
</div>

<table>
  <tr>
    <th>ID</th><th>Date</th><th>Sport</th><th>Book</th><th>Type</th>
    <th>Team / Player</th><th>Odds</th><th>Stake</th><th>Result</th><th>Profit</th><th>Notes</th>
  </tr>
  {{range .Bets}}
  <tr>
    <td>{{.ID}}</td>
    <td>{{.Date}}</td>
    <td>{{.Sport}}</td>
    <td>{{.Book}}</td>
    <td>{{.Type}}</td>
    <td>{{.TeamOrPlayer}}</td>
    <td>{{.OddsAmerican}}</td>
    <td>{{printf "%.2f" .Stake}}</td>
    <td>{{.Result}}</td>
    <td class="{{if lt .ProfitValue 0.0}}neg{{else if gt .ProfitValue 0.0}}pos{{end}}">{{printf "%.2f" .ProfitValue}}</td>
    <td>{{.Notes}}</td>
  </tr>
  {{end}}
</table>

<div class="forms">
  <form method="post" action="/bets">
    <h2>Add Bet</h2>
    <label>Date <input type="date" name="date" required></label>
    <label>Sport <input name="sport" value="NBA"></label>
    <label>Book <input name="book" value="DK"></label>
    <label>Type <input name="type" value="spread"></label>
    <label>Team / Player <input name="team_or_player"></label>
    <label>Odds (American) <input type="number" name="odds_american" value="-110" step="1"></label>
    <label>Stake <input type="number" name="stake" value="50" step="0.01" min="0.01"></label>
    <label>Result <select name="result">
      <option>OPEN</option><option>W</option><option>L</option><option>P</option>
    </select></label>
    <label>Notes <input name="notes"></label>
    <button type="submit">Add</button>
  </form>

  {{if .Bets}}
  <form method="post" id="update-form" action="/bets/{{(index .Bets 0).ID}}/result">
    <h2>Update Result</h2>
    <label>Bet <select name="bet_id" onchange="document.getElementById('update-form').action='/bets/'+this.value+'/result'">
      {{range .Bets}}<option value="{{.ID}}">{{.ID}} | {{.Date}} | {{.Sport}} | {{.Book}} | {{.TeamOrPlayer}} | {{.Result}}</option>{{end}}
    </select></label>
    <label>New result <select name="result">
      <option>W</option><option>L</option><option>P</option><option>OPEN</option>
    </select></label>
    <button type="submit">Update</button>
  </form>
  {{end}}
</div>
</body>
</html>
`
