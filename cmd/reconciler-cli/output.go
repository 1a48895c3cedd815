package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"yashubustudio/reconciler/reconciler"
)

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := tablewriter.NewTable(w)
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

func printStats(w io.Writer, res *reconciler.Result) error {
	s := res.Stats
	rows := [][]string{
		{"Coluna-chave", res.KeyColumn},
		{"Duplicatas removidas", strconv.Itoa(s.DuplicatesRemoved)},
		{"Registros processados", strconv.Itoa(s.Processed)},
		{"Pendentes", strconv.Itoa(s.Pending)},
		{"Responsável herdado", strconv.Itoa(s.Carried)},
		{"Classificados por palavra-chave", strconv.Itoa(s.Classified)},
		{"Sem responsável", strconv.Itoa(s.Unassigned)},
	}
	return renderTable(w, []string{"Métrica", "Valor"}, rows)
}
