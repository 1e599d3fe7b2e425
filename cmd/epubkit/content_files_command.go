package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newContentFilesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "content-files <dir> <opf-path>",
		Short: "Print the paths of the content documents in a working directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}

			var paths []string
			err = ctx.withDirLock(dir, func() error {
				paths, err = ctx.workspace().ContentFiles(dir, args[1])
				return err
			})
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
