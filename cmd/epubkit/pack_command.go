package main

import (
	"github.com/spf13/cobra"
)

func newPackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <dir> <output>",
		Short: "Pack a working directory into an ePub",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withDirLock(args[0], func() error {
				return ctx.workspace().Pack(args[0], args[1])
			})
		},
	}
}
