package cmd

import (
	"encoding/json"
	"errors"

	"github.com/kube-rca/incident-desk/internal/service"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <incident-id>",
	Short: "Analyze one incident and print the result as JSON",
	Long: `Runs the same cached analysis as POST /api/v1/incidents/{id}/analyze.
A cached result is printed without calling the completion API.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	record, err := a.analysis.Analyze(ctx, args[0])
	if err != nil {
		if !errors.Is(err, service.ErrAnalysisNotCached) || record == nil || record.Saved() {
			return err
		}
		a.logger.Warn("analysis result was not cached", "incident_id", args[0], "error", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
