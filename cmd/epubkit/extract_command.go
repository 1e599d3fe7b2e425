package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <archive> <dir>",
		Short: "Unpack an ePub into a working directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[1], err)
			}
			if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
				return fmt.Errorf("create %s: %w", filepath.Dir(dir), err)
			}

			var out extractOutput
			err = ctx.withDirLock(dir, func() error {
				res, err := ctx.workspace().Extract(args[0], dir)
				if err != nil {
					return err
				}
				out = extractOutput{
					ExtractDir:  res.Dir,
					OPFPath:     res.OPFPath,
					OPFFullPath: res.OPFFullPath,
					Warnings:    res.Warnings,
				}
				return nil
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd, out)
		},
	}
}
