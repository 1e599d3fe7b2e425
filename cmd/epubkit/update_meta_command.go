package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simp-lee/epubkit"
)

func newUpdateMetaCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var titleSuffix string

	cmd := &cobra.Command{
		Use:   "update-meta <dir> <opf-path>",
		Short: "Set the language and append a title suffix in the package document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("lang") {
				lang = ctx.config.Metadata.Language
			}
			if !cmd.Flags().Changed("title-suffix") {
				titleSuffix = ctx.config.Metadata.TitleSuffix
			}
			if strings.TrimSpace(lang) == "" {
				ctx.logger.Debug("no language given; leaving metadata untouched")
				return nil
			}

			dir := args[0]
			opfFullPath := filepath.Join(dir, filepath.FromSlash(args[1]))
			return ctx.withDirLock(dir, func() error {
				_, err := ctx.workspace().UpdateMetadata(opfFullPath, epubkit.MetadataUpdate{
					Language:    lang,
					TitleSuffix: titleSuffix,
				})
				return err
			})
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Language code (e.g., zh-CN, ja, es)")
	cmd.Flags().StringVar(&titleSuffix, "title-suffix", "", "Suffix to add to the title")
	return cmd
}
