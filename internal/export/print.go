package export

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type printRenderer struct{}

func (printRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (printRenderer) Extension() string   { return ".html" }
func (printRenderer) Inline() bool        { return true }

func (printRenderer) Render(ctx context.Context, w io.Writer, rep Report) error {
	return PrintPage(rep).Render(ctx, w)
}

// PrintPage is a standalone HTML report that opens the browser's print
// dialog when loaded.
func PrintPage(rep Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := templ.EscapeString(reportHeading(rep))

		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`+
			heading+`</title><style>`+printCSS+`</style></head><body onload="window.print()"><h1>`+
			heading+`</h1>`); err != nil {
			return err
		}

		var err error
		if rep.Set.Single {
			err = printRecord(w, rep)
		} else {
			err = printTable(w, rep)
		}
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, `<footer>`+templ.EscapeString(rep.GeneratedAt.Format("2006-01-02 15:04"))+
			`</footer></body></html>`)
		return err
	})
}

func printTable(w io.Writer, rep Report) error {
	if _, err := io.WriteString(w, `<table><thead><tr>`); err != nil {
		return err
	}
	for _, h := range rep.Headers {
		if _, err := io.WriteString(w, `<th>`+templ.EscapeString(h)+`</th>`); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, `</tr></thead><tbody>`); err != nil {
		return err
	}
	for _, row := range rep.Set.Records {
		if _, err := io.WriteString(w, `<tr>`); err != nil {
			return err
		}
		for _, col := range rep.Set.Columns {
			if _, err := io.WriteString(w, `<td>`+templ.EscapeString(FormatCell(row[col.Name]))+`</td>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tr>`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table>`)
	return err
}

func printRecord(w io.Writer, rep Report) error {
	if len(rep.Set.Records) == 0 {
		return nil
	}
	row := rep.Set.Records[0]

	if _, err := io.WriteString(w, `<table class="record"><tbody>`); err != nil {
		return err
	}
	for i, col := range rep.Set.Columns {
		line := `<tr><th>` + templ.EscapeString(rep.Headers[i]) + `</th><td>` +
			templ.EscapeString(FormatCell(row[col.Name])) + `</td></tr>`
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</tbody></table>`)
	return err
}

// reportHeading is "<title> - <entity label>", or whichever is set.
func reportHeading(rep Report) string {
	label := ""
	if rep.Set.Entity != nil {
		label = rep.Set.Entity.Label
	}
	switch {
	case rep.Title == "":
		return label
	case label == "":
		return rep.Title
	}
	return rep.Title + " - " + label
}

const printCSS = `body{font-family:Helvetica,Arial,sans-serif;font-size:11px;margin:16px}
h1{font-size:16px;margin:0 0 12px}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #999;padding:3px 5px;text-align:left;vertical-align:top}
thead th{background:#e6e6e6}
table.record th{width:30%}
footer{margin-top:12px;color:#666;font-size:9px}
@media print{body{margin:0}}`
