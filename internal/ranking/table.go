package ranking

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable prints the ranking as a table.
func RenderTable(out io.Writer, entries []Entry) {
	scoreTransformer := text.NewNumberTransformer("%.4f")

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Rank", "Ticker", "Score"})
	for _, e := range entries {
		tw.AppendRow(table.Row{e.Ranking, e.Ticker, e.Score})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Rank", Align: text.AlignRight},
		{Name: "Score", Align: text.AlignRight, Transformer: scoreTransformer},
	})
	tw.Render()
}
