package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sheet-graph/core/mapper"
	"sheet-graph/core/registry"
	"sheet-graph/core/sheet/xlsx"

	"github.com/spf13/cobra"
)

type sheetLayout struct {
	Sheet  string           `json:"sheet"`
	Tables []registry.Table `json:"tables"`
}

// blocksCmd represents the blocks command
var blocksCmd = &cobra.Command{
	Use:   "blocks <path.xlsx>",
	Short: "Show how a workbook is segmented into tables",
	Long:  `Reads a local XLSX workbook and prints, for every sheet, the detected header rows, data rows and column names. Nothing is written.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		wb, err := xlsx.NewFileSource().Fetch(context.Background(), args[0])
		if err != nil {
			return err
		}

		layouts := make([]sheetLayout, 0, len(wb.Sheets))
		for _, s := range wb.Sheets {
			layout := sheetLayout{Sheet: mapper.SheetTitle(s), Tables: []registry.Table{}}
			for _, p := range mapper.BuildSheet(s) {
				layout.Tables = append(layout.Tables, p.Table)
			}
			layouts = append(layouts, layout)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(layouts)
		}

		for _, l := range layouts {
			fmt.Printf("%s: %d table(s)\n", l.Sheet, len(l.Tables))
			for _, t := range l.Tables {
				fmt.Printf("  %s header=row %d data=%s\n", t.Name, t.Block.HeaderRow+1, rowSpan(t.Block.DataRows))
				fmt.Printf("    columns: %s\n", strings.Join(t.Columns, ", "))
			}
		}
		return nil
	},
}

// rowSpan renders 0-based row indexes as 1-based sheet row numbers.
func rowSpan(rows []int) string {
	switch len(rows) {
	case 0:
		return "none"
	case 1:
		return fmt.Sprintf("row %d", rows[0]+1)
	default:
		return fmt.Sprintf("rows %d-%d", rows[0]+1, rows[len(rows)-1]+1)
	}
}

func init() {
	blocksCmd.Flags().Bool("json", false, "Print the layout as JSON")
	RootCmd.AddCommand(blocksCmd)
}
