package server

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Menu PDF to CSV Converter</title>
  <style>
    body { font-family: sans-serif; max-width: 640px; margin: 3em auto; }
    label { display: block; margin-top: 1em; }
    .error { color: #b00020; margin-top: 1em; }
  </style>
</head>
<body>
  <h1>Menu PDF to CSV Converter</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/convert" enctype="multipart/form-data">
    <label>Upload a PDF file
      <input type="file" name="document" accept=".pdf" required>
    </label>
    <label>Enter your API key
      <input type="password" name="api_key" required>
    </label>
    <button type="submit">Submit</button>
  </form>
</body>
</html>
`))

var jobTemplate = template.Must(template.New("job").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Converting {{.Document}}</title>
  <style>
    body { font-family: sans-serif; max-width: 640px; margin: 3em auto; }
    progress { width: 100%; }
    .error { color: #b00020; }
  </style>
</head>
<body>
  <h1>Converting {{.Document}}</h1>
  <progress id="bar" value="0" max="1"></progress>
  <p id="status">starting</p>
  <div id="result" hidden>
    <p><a href="/jobs/{{.ID}}/table">View table</a> &middot;
       <a href="/jobs/{{.ID}}/download">Download CSV</a> &middot;
       <a href="/jobs/{{.ID}}/download?format=xlsx">Download XLSX</a></p>
  </div>
  <script>
    const poll = async () => {
      const resp = await fetch('/jobs/{{.ID}}/progress');
      const job = await resp.json();
      document.getElementById('bar').value = job.fraction;
      document.getElementById('status').textContent = job.error || job.status;
      if (job.state === 'done') {
        document.getElementById('result').hidden = false;
        return;
      }
      if (job.state === 'failed') {
        document.getElementById('status').className = 'error';
        return;
      }
      setTimeout(poll, 1000);
    };
    poll();
  </script>
</body>
</html>
`))

var tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Combined menu table</title>
  <style>
    body { font-family: sans-serif; margin: 2em; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
  </style>
</head>
<body>
  <h1>Combined menu table ({{len .Rows}} rows)</h1>
  <p><a href="/jobs/{{.ID}}/download">Download CSV</a></p>
  <table>
    <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
    {{range .Rows}}
    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{end}}
  </table>
</body>
</html>
`))
