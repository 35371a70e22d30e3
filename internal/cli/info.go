package cli

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/babarot/putback/internal/trash"
)

// renderItems prints one row per trashed entry
func renderItems(w io.Writer, items []trash.Item) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Deleted From", "Trashed As", "Deleted"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(lo.Map(items, func(it trash.Item, _ int) []string {
		return []string{
			it.Name.String(),
			it.OriginalParent.String(),
			it.ID.String(),
			humanize.Time(it.DeletedAt),
		}
	}))
	table.Render()
}
