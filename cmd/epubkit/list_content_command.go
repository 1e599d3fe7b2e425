package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListContentCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var tableOut bool
	var inspect bool

	cmd := &cobra.Command{
		Use:   "list-content <archive>",
		Short: "List the translatable content documents of an ePub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := ctx.workspace().ListContent(args[0], inspect)
			if err != nil {
				return err
			}

			switch {
			case jsonOut:
				return writeJSON(cmd, toContentEntryOutputs(entries))
			case tableOut:
				fmt.Fprintln(cmd.OutOrStdout(), renderContentTable(entries, inspect))
				return nil
			default:
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.ID, e.Href)
				}
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&tableOut, "table", false, "Output as a table")
	cmd.Flags().BoolVar(&inspect, "inspect", false, "Read each document for its title, text length and license status")
	cmd.MarkFlagsMutuallyExclusive("json", "table")
	return cmd
}
