package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the model and print a sanity report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clf := a.newClassifier()
			defer clf.Close()
			report := clf.SanityCheck(a.cfg.ORTLibraryPath)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.OK() {
				return errors.New("sanity check failed")
			}
			return nil
		},
	}
}
