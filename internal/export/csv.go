package export

import (
	"context"
	"encoding/csv"
	"io"
)

type csvRenderer struct{}

func (csvRenderer) ContentType() string { return "text/csv; charset=utf-8" }
func (csvRenderer) Extension() string   { return ".csv" }
func (csvRenderer) Inline() bool        { return false }

func (csvRenderer) Render(_ context.Context, w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rep.Headers); err != nil {
		return err
	}

	record := make([]string, len(rep.Set.Columns))
	for _, row := range rep.Set.Records {
		for i, col := range rep.Set.Columns {
			record[i] = FormatCell(row[col.Name])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
