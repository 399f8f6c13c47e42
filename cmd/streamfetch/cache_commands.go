package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamfetch/internal/logging"
	"streamfetch/internal/video"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the metadata cache",
		Long: `Inspect and manage the metadata cache.

The metadata cache stores resolved video records so repeated fetches of
the same GUID skip the remote API entirely.

Commands:
  list     - List all cached video records
  show     - Show the full record for one GUID
  clear    - Remove the cache file`,
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cached video records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.metadataCache(logging.NewNop())
			if err != nil {
				return err
			}
			records := cache.All()

			if ctx.JSONMode() {
				if records == nil {
					records = []video.Video{}
				}
				return writeJSON(cmd, records)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Metadata cache: empty")
				return nil
			}

			fmt.Fprintf(out, "Metadata cache: %d records\n", len(records))
			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.UniqueID,
					record.Title,
					record.Duration,
					record.PublishDate,
					record.Author,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"GUID", "Title", "Duration", "Published", "Author"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <guid>",
		Short: "Show the full cached record for one GUID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.metadataCache(logging.NewNop())
			if err != nil {
				return err
			}
			record, ok := cache.Lookup(args[0])
			if !ok {
				return fmt.Errorf("no cached record for %s", args[0])
			}
			return writeJSON(cmd, record)
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cache file",
		Long:  "Delete all cached video records. Records are rebuilt as videos are resolved again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.metadataCache(logging.NewNop())
			if err != nil {
				return err
			}

			count := len(cache.All())
			if count == 0 {
				if ctx.JSONMode() {
					return writeJSON(cmd, map[string]any{"removed": 0})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Metadata cache is already empty")
				return nil
			}

			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"removed": count})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached records\n", count)
			return nil
		},
	}
}
