package server

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/stepboard/models"
)

type sortButton struct {
	Field models.SortField
	Label string
	Next  string
}

type indexData struct {
	Entries []models.DisplayEntry
	Alert   models.Alert
	Current string
	Sorts   []sortButton
	Chart   template.HTML
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Steps</title>
  <style>
    body { font-family: sans-serif; margin: 1.5em; }
    table { border-collapse: collapse; }
    td, th { padding: 4px 10px; border-bottom: 1px solid #ddd; text-align: right; }
    td.name, th.name { text-align: left; }
    .alert { background: #fdd; border: 1px solid #c66; padding: 6px 10px; margin-bottom: 1em; }
    .current { font-weight: bold; }
    form.inline { display: inline; }
  </style>
</head>
<body>
  {{if .Alert.Visible}}<div class="alert" id="alert">{{.Alert.Message}}</div>{{end}}
  <div class="sort">
    {{range .Sorts}}<form class="inline" method="post" action="/sort/{{.Field}}"><button type="submit" title="next: {{.Next}}">{{.Label}}</button></form>
    {{end}}
  </div>
  <form id="draw" method="post" action="/draw"></form>
  <table>
    <tr><th></th><th class="name">Name</th><th>Average</th><th>Max</th><th>Min</th><th>Class</th><th></th></tr>
    {{range .Entries}}
    <tr style="background: {{.Class.Color}}"{{if eq .Name $.Current}} class="current"{{end}}>
      <td><input type="checkbox" form="draw" name="user" value="{{.Name}}"{{if .Selected}} checked{{end}}></td>
      <td class="name">{{.Name}}</td>
      <td>{{.AverageSteps}}</td>
      <td>{{.MaxSteps}}</td>
      <td>{{.MinSteps}}</td>
      <td>{{.Class.Title}}</td>
      <td><form class="inline" method="post" action="/save"><button type="submit" name="user" value="{{.Name}}">Save</button></form></td>
    </tr>
    {{end}}
  </table>
  <p><button type="submit" form="draw">Draw selected</button></p>
  <div class="canvas">{{.Chart}}</div>
</body>
</html>
`))

func indexPage(data indexData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return indexTemplate.Execute(w, data)
	})
}
