package render

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/vk/graphsolver/internal/graph"
)

// Solution is one row of a solutions table.
type Solution struct {
	Graph *graph.Graph
	Score float64
	// Fitness is nil when no fitness evaluator ran.
	Fitness *float64
}

// Mode selects the table output format.
type Mode int

const (
	ASCII Mode = iota
	Markdown
)

// SolutionsTable renders ranked solutions as a table, one row per solution
// with its function listing in the last column.
func SolutionsTable(solutions []Solution, mode Mode) string {
	w := table.NewWriter()
	if mode == ASCII {
		w.SetStyle(table.StyleLight)
	}
	w.AppendHeader(table.Row{"#", "Score", "Fitness", "Nodes", "Connections", "Function"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	for i, s := range solutions {
		fitness := "-"
		if s.Fitness != nil {
			fitness = formatFloat(*s.Fitness)
		}
		w.AppendRow(table.Row{
			i + 1,
			formatFloat(s.Score),
			fitness,
			s.Graph.NodeCount(),
			s.Graph.ConnectionCount(),
			strings.TrimRight(Function(s.Graph), "\n"),
		})
	}
	if mode == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
