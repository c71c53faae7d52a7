package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/autodoc/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect autodoc configuration",
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of " + config.FileName,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.GenerateJSONSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "output_dir:    %q\n", cfg.OutputDir)
		fmt.Fprintf(w, "select:        %q\n", cfg.Select)
		fmt.Fprintf(w, "verbose:       %t\n", cfg.Verbose)
		fmt.Fprintf(w, "preview.style: %q\n", cfg.Preview.Style)
		fmt.Fprintf(w, "preview.width: %d\n", cfg.Preview.Width)
	},
}

func init() {
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configShowCmd)
}
