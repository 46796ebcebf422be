package html

// APIReportTemplate renders endpoints grouped by controller, followed by the
// diagnostics of the run.
const APIReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>API Specification - {{.AnalysisDate}}</title>
<style>
:root { --ink: #1f2933; --muted: #616e7c; --line: #e4e7eb; --paper: #ffffff; --bg: #f5f7fa; --accent: #3e4c59; }
* { box-sizing: border-box; }
body { margin: 0; font: 14px/1.55 system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif; color: var(--ink); background: var(--bg); }
code, .mono, .signature, .param-type { font-family: ui-monospace, 'SF Mono', Menlo, Consolas, monospace; }
.layout { display: grid; grid-template-columns: 260px 1fr; min-height: 100vh; }
nav { position: sticky; top: 0; height: 100vh; overflow-y: auto; background: var(--accent); color: #f5f7fa; padding: 24px 16px; }
nav h1 { font-size: 18px; margin: 0 0 4px; }
nav .date { font-size: 12px; opacity: .7; margin-bottom: 20px; }
nav a { display: flex; justify-content: space-between; color: inherit; text-decoration: none; padding: 6px 8px; border-radius: 4px; }
nav a:hover { background: rgba(255,255,255,.12); }
nav .count { opacity: .6; }
main { padding: 32px 40px; max-width: 1100px; }
.stats { display: flex; gap: 16px; margin-bottom: 32px; }
.stat { flex: 1; background: var(--paper); border: 1px solid var(--line); border-radius: 6px; padding: 16px; }
.stat-value { font-size: 28px; font-weight: 600; }
.stat-label { color: var(--muted); font-size: 12px; text-transform: uppercase; letter-spacing: .04em; }
.controller { margin-bottom: 40px; }
.controller > h2 { font-size: 20px; border-bottom: 2px solid var(--line); padding-bottom: 6px; }
.endpoint { background: var(--paper); border: 1px solid var(--line); border-radius: 6px; margin: 16px 0; overflow: hidden; }
.endpoint-header { display: flex; align-items: center; gap: 12px; padding: 12px 16px; border-bottom: 1px solid var(--line); }
.method-badge { min-width: 64px; text-align: center; color: #fff; font-weight: 700; font-size: 12px; padding: 3px 8px; border-radius: 3px; }
.method-get { background: #2f8132; } .method-post { background: #186faf; } .method-put { background: #95507c; }
.method-delete { background: #cc3333; } .method-patch { background: #bf581d; } .method-default { background: #7b8794; }
.endpoint-path { font-family: ui-monospace, Menlo, Consolas, monospace; font-weight: 600; }
.endpoint-name { margin-left: auto; color: var(--muted); }
.endpoint-body { padding: 12px 16px; }
.signature { background: var(--bg); border-radius: 4px; padding: 6px 10px; font-size: 12px; word-break: break-all; }
.endpoint-summary { margin: 8px 0; }
h3 { font-size: 13px; text-transform: uppercase; color: var(--muted); margin: 16px 0 6px; }
table { width: 100%; border-collapse: collapse; font-size: 13px; }
th { text-align: left; color: var(--muted); font-weight: 600; border-bottom: 1px solid var(--line); padding: 6px 8px; }
td { border-bottom: 1px solid var(--line); padding: 6px 8px; vertical-align: top; }
.param-name { font-weight: 600; }
.param-type { color: #7c5e10; }
.required { color: #cc3333; font-weight: 600; }
.optional { color: var(--muted); }
.diag-error { color: #cc3333; font-weight: 700; }
.diag-warning { color: #bf581d; font-weight: 700; }
.empty { background: var(--paper); border: 1px dashed var(--line); border-radius: 6px; padding: 40px; text-align: center; color: var(--muted); }
footer { color: var(--muted); font-size: 12px; margin-top: 48px; }
</style>
</head>
<body>
<div class="layout">
<nav>
  <h1>API Specification</h1>
  <div class="date">{{.AnalysisDate}}</div>
  {{range .Groups}}<a href="#{{.Anchor}}"><span>{{.Controller}}</span><span class="count">{{len .Endpoints}}</span></a>
  {{end}}
  {{if .Diagnostics}}<a href="#diagnostics"><span>Diagnostics</span><span class="count">{{len .Diagnostics}}</span></a>{{end}}
</nav>
<main>
  <div class="stats">
    <div class="stat"><div class="stat-value">{{.TotalControllers}}</div><div class="stat-label">Controllers</div></div>
    <div class="stat"><div class="stat-value">{{.TotalEndpoints}}</div><div class="stat-label">Endpoints</div></div>
    <div class="stat"><div class="stat-value">{{len .Diagnostics}}</div><div class="stat-label">Diagnostics</div></div>
  </div>

  {{range .Groups}}
  <section class="controller" id="{{.Anchor}}">
    <h2>{{.Controller}}</h2>
    {{range .Endpoints}}
    <div class="endpoint">
      <div class="endpoint-header">
        <span class="method-badge {{methodColor .Method}}">{{methodBadge .Method}}</span>
        <span class="endpoint-path">{{.Path}}</span>
        <span class="endpoint-name">{{.Name}}</span>
      </div>
      <div class="endpoint-body">
        <div class="signature">{{.Signature}}</div>
        {{if .Summary}}<p class="endpoint-summary">{{.Summary}}</p>{{end}}
        {{if .Params}}
        <h3>Parameters</h3>
        <table>
          <thead><tr><th>Name</th><th>Type</th><th>Java Type</th><th>In</th><th>Required</th><th>Default</th></tr></thead>
          <tbody>
          {{range .Params}}
            <tr>
              <td class="param-name">{{.Name}}</td>
              <td class="param-type">{{.APIType}}</td>
              <td class="param-type">{{.Type}}</td>
              <td>{{.In}}</td>
              <td>{{if .Required}}<span class="required">yes</span>{{else}}<span class="optional">no</span>{{end}}</td>
              <td>{{.Default}}</td>
            </tr>
          {{end}}
          </tbody>
        </table>
        {{end}}
        <h3>Response</h3>
        <table>
          <thead><tr><th>Status</th><th>Type</th><th>Java Type</th></tr></thead>
          <tbody><tr><td>200</td><td class="param-type">{{.APIResponse}}</td><td class="param-type">{{.Response}}</td></tr></tbody>
        </table>
      </div>
    </div>
    {{end}}
  </section>
  {{else}}
  <div class="empty">
    <h3>No API endpoints found</h3>
    <p>Controllers need @RestController or @ResponseBody methods with a request mapping.</p>
  </div>
  {{end}}

  {{if .Diagnostics}}
  <section id="diagnostics">
    <h2>Diagnostics</h2>
    <table>
      <thead><tr><th>Severity</th><th>Code</th><th>Scope</th><th>Element</th><th>Message</th></tr></thead>
      <tbody>
      {{range .Diagnostics}}
        <tr>
          <td class="{{severityClass .Severity}}">{{.Severity}}</td>
          <td>{{.Code}}</td>
          <td class="mono">{{.Scope}}</td>
          <td class="param-name">{{.Element}}</td>
          <td>{{.Message}}</td>
        </tr>
      {{end}}
      </tbody>
    </table>
  </section>
  {{end}}

  <footer>Generated by <strong>API Recon</strong> v1.0.0</footer>
</main>
</div>
</body>
</html>
`
