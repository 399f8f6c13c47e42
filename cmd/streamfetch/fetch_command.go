package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"streamfetch/internal/logging"
	"streamfetch/internal/organizer"
	"streamfetch/internal/prompt"
	"streamfetch/internal/resolver"
	"streamfetch/internal/services/stream"
	"streamfetch/internal/video"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputDir string
	var subtitles bool

	cmd := &cobra.Command{
		Use:   "fetch [guid ...]",
		Short: "Resolve metadata for one or more videos and assign output paths",
		Long: `Resolve metadata for one or more videos and assign output paths.

Video GUIDs are taken from the command line, from --input (one GUID per
line; blank lines and lines starting with # are skipped), or both.
Previously resolved videos are served from the metadata cache without
touching the network. Failures are recorded in the download report and
the remaining videos continue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := collectIDs(args, inputPath)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return errors.New("no video GUIDs given; pass them as arguments or via --input")
			}
			return runFetch(cmd, ctx, ids, outputDir, subtitles)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "File containing video GUIDs, one per line")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to paths.output_dir)")
	cmd.Flags().BoolVar(&subtitles, "subtitles", false, "Fetch closed caption tracks as well")
	return cmd
}

func runFetch(cmd *cobra.Command, ctx *commandContext, ids []string, outputDir string, subtitles bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateStream(); err != nil {
		return err
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	lock := flock.New(cfg.Paths.LockFile)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return errors.New("another streamfetch instance is already running")
	}
	defer func() { _ = lock.Unlock() }()

	logger, err := ctx.newLogger(cmd)
	if err != nil {
		return err
	}

	client, err := stream.New(stream.Session{
		AccessToken: cfg.Stream.AccessToken,
		APIBaseURL:  cfg.Stream.APIBaseURL,
	}, stream.WithTimeout(time.Duration(cfg.Stream.RequestTimeout)*time.Second))
	if err != nil {
		return err
	}

	cache, err := ctx.metadataCache(logger)
	if err != nil {
		return err
	}
	reporter, err := ctx.reporter(logger)
	if err != nil {
		return err
	}
	console := prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())

	res := resolver.New(client, cache, reporter, console, logger, resolver.Options{
		IncludeSubtitles: subtitles || cfg.Subtitles.Enabled,
	})
	videos := res.Resolve(signalCtx, ids)

	dir := strings.TrimSpace(outputDir)
	if dir == "" {
		dir = cfg.Paths.OutputDir
	}
	assigner := organizer.NewAssigner(logger, cfg.Naming.SkipExistenceCheck)
	videos = assigner.Assign(videos, []string{dir}, cfg.Naming.Template, cfg.Naming.Format)

	logger.Info("resolution finished",
		logging.Int("requested", len(ids)),
		logging.Int("resolved", len(videos)))

	if ctx.JSONMode() {
		if videos == nil {
			videos = []video.Video{}
		}
		return writeJSON(cmd, videos)
	}
	printFetchResults(cmd, ids, videos, cfg.Paths.ReportFile)
	return nil
}

func printFetchResults(cmd *cobra.Command, ids []string, videos []video.Video, reportPath string) {
	out := cmd.OutOrStdout()
	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos resolved; see the download report for details.")
		fmt.Fprintf(out, "Report: %s\n", reportPath)
		return
	}

	rows := make([][]string, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []string{v.UniqueID, v.Title, v.Duration, v.OutPath})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"GUID", "Title", "Duration", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))

	if failed := len(ids) - len(videos); failed > 0 {
		fmt.Fprintf(out, "%d of %d videos failed; see %s\n", failed, len(ids), reportPath)
	}
}

func collectIDs(args []string, inputPath string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	inputPath = strings.TrimSpace(inputPath)
	if inputPath == "" {
		return ids, nil
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return ids, nil
}
