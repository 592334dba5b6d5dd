package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"sheet-graph/feature/ingest"

	"github.com/spf13/cobra"
)

var dryRunFlag bool
var jsonFlag bool

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a workbook into the graph",
	Long: `Runs a full ingestion pass: every sheet is segmented into blocks, each block is
written to the graph, and the block registry is replaced. With --dry-run the
batches are built against an in-memory graph and only a summary is printed.`,
}

func newIngestSubcommand(use, short, source string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), source, args[0])
		},
	}
}

func runIngest(ctx context.Context, source, id string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := bootstrap(ctx, bootstrapOptions{memoryGraph: dryRunFlag, consoleLog: true})
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	var report *ingest.Report
	if dryRunFlag {
		report, err = rt.ingest.Plan(ctx, source, id)
	} else {
		report, err = rt.ingest.Ingest(ctx, source, id)
	}
	if report != nil {
		printReport(report)
	}
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	return nil
}

func printReport(report *ingest.Report) {
	if jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}

	mode := "applied"
	if report.DryRun {
		mode = "planned"
	}
	fmt.Printf("%s %s (%s)\n", mode, report.SpreadsheetID, report.Source)
	for _, s := range report.Sheets {
		fmt.Printf("  %-24s %-6s tables=%d rows=%d cells=%d ops=%d\n",
			s.Sheet, s.Status, len(s.Tables), s.Rows, s.Cells, s.Ops)
		if s.Error != "" {
			fmt.Printf("    error: %s\n", s.Error)
		}
	}
	if report.DryRun {
		fmt.Printf("  distinct nodes=%d links=%d\n", report.Nodes, report.Links)
	}
}

func init() {
	ingestCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "Build batches against an in-memory graph without writing")
	ingestCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print the report as JSON")

	ingestCmd.AddCommand(newIngestSubcommand("sheets <spreadsheet-id>", "Ingest a Google Sheets spreadsheet", ingest.SourceSheets))
	ingestCmd.AddCommand(newIngestSubcommand("file <path.xlsx>", "Ingest a local XLSX workbook", ingest.SourceFile))
	ingestCmd.AddCommand(newIngestSubcommand("object <object-name>", "Ingest an XLSX workbook from the bucket", ingest.SourceObject))
	RootCmd.AddCommand(ingestCmd)
}
