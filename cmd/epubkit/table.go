package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/simp-lee/epubkit"
)

// renderContentTable lays out manifest entries, adding the inspection columns
// when inspect is set. Entries without inspection results leave those cells
// blank.
func renderContentTable(entries []epubkit.ContentEntry, inspect bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := table.Row{"ID", "Href", "Media Type"}
	if inspect {
		header = append(header, "Title", "Chars", "License")
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Chars", Align: text.AlignRight, AlignHeader: text.AlignLeft},
		})
	}
	tw.AppendHeader(header)

	for _, e := range entries {
		row := table.Row{e.ID, e.Href, e.MediaType}
		switch {
		case inspect && e.Info != nil:
			row = append(row, e.Info.Title, strconv.Itoa(e.Info.TextLength), yesNo(e.Info.IsLicense))
		case inspect:
			row = append(row, "", "", "")
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
