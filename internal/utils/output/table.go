package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/law-makers/racecard/pkg/models"
)

// RenderTable writes runners to w as a terminal table, ranked position first
func RenderTable(w io.Writer, runners []models.Runner, layout Layout) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	header := table.Row{"#"}
	for _, c := range Columns(layout) {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for i, r := range runners {
		row := table.Row{i + 1}
		for _, v := range Values(r, layout) {
			row = append(row, v)
		}
		t.AppendRow(row)
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: len(header), Align: text.AlignRight},
	})
	t.Render()
}
