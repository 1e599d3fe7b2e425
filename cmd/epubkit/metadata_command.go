package main

import (
	"github.com/spf13/cobra"
)

func newMetadataCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <dir> <opf-path>",
		Short: "Print the Dublin Core metadata of a working directory as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := ctx.workspace().ReadMetadata(args[0], args[1])
			if err != nil {
				return err
			}
			return writeJSON(cmd, toMetadataOutput(md))
		},
	}
}
