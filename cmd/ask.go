package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sheet-graph/core/llm"
	"sheet-graph/feature/ask"

	"github.com/spf13/cobra"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question about the ingested spreadsheets",
	Long:  `Generates a Cypher query for the question with the configured model, runs it against Neo4j and prints the records.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := bootstrap(ctx, bootstrapOptions{consoleLog: true})
		if err != nil {
			return err
		}
		defer rt.Close(ctx)

		generator, err := llm.NewClient(rt.cfg.LLM, rt.logger)
		if err != nil {
			return err
		}

		answer, err := ask.NewService(generator, rt.store, rt.logger).Ask(ctx, strings.Join(args, " "))
		if answer != nil {
			fmt.Fprintf(os.Stderr, "cypher: %s\n", answer.Query)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer.Records)
	},
}

func init() {
	RootCmd.AddCommand(askCmd)
}
