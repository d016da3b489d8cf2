package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/link2itinerary/core/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema generated itineraries must satisfy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var buf bytes.Buffer
		if err := json.Indent(&buf, schema.PlannerResponse().MustJSON(), "", "  "); err != nil {
			return fmt.Errorf("formatting schema: %w", err)
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
