package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/simp-lee/epubkit"
	"github.com/simp-lee/epubkit/internal/config"
	"github.com/simp-lee/epubkit/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	config *config.Config
	logger *log.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// init loads the configuration and builds the logger. It runs once per
// invocation from the root command's PersistentPreRunE.
func (c *commandContext) init(cmd *cobra.Command) error {
	var path string
	if c.configFlag != nil {
		path = strings.TrimSpace(*c.configFlag)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		level = *c.logLevelFlag
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	c.config = cfg
	c.logger = logger
	return nil
}

func (c *commandContext) workspace() *epubkit.Workspace {
	cfg := c.config
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	return epubkit.NewOS(
		epubkit.WithLogger(c.logger),
		epubkit.WithRequireEmptyTarget(cfg.Extract.RequireEmptyTarget),
		epubkit.WithMaxEntrySize(cfg.MaxEntryBytes()),
		epubkit.WithCompressionLevel(cfg.Pack.CompressionLevel),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
