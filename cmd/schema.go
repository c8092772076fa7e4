package cmd

import (
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create missing tables and indexes, then exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.repo.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		a.logger.Info("schema is up to date")
		return nil
	},
}
