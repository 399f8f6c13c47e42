package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"streamfetch/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set api_base_url and access_token (or export STREAMFETCH_ACCESS_TOKEN) before running streamfetch fetch.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"output_dir":           cfg.Paths.OutputDir,
					"cache_file":           cfg.Paths.CacheFile,
					"report_file":          cfg.Paths.ReportFile,
					"lock_file":            cfg.Paths.LockFile,
					"api_base_url":         cfg.Stream.APIBaseURL,
					"access_token_set":     cfg.Stream.AccessToken != "",
					"request_timeout":      cfg.Stream.RequestTimeout,
					"template":             cfg.Naming.Template,
					"format":               cfg.Naming.Format,
					"skip_existence_check": cfg.Naming.SkipExistenceCheck,
					"subtitles":            cfg.Subtitles.Enabled,
					"log_format":           cfg.Logging.Format,
					"log_level":            cfg.Logging.Level,
				})
			}

			rows := [][]string{
				{"Output directory", cfg.Paths.OutputDir},
				{"Cache file", cfg.Paths.CacheFile},
				{"Report file", cfg.Paths.ReportFile},
				{"Lock file", cfg.Paths.LockFile},
				{"API base URL", cfg.Stream.APIBaseURL},
				{"Access token", yesNo(cfg.Stream.AccessToken != "")},
				{"Request timeout", fmt.Sprintf("%ds", cfg.Stream.RequestTimeout)},
				{"Naming template", cfg.Naming.Template},
				{"Container format", cfg.Naming.Format},
				{"Skip existence check", yesNo(cfg.Naming.SkipExistenceCheck)},
				{"Subtitles", yesNo(cfg.Subtitles.Enabled)},
				{"Log format", cfg.Logging.Format},
				{"Log level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
