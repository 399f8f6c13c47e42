package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"streamfetch/internal/video"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	cachePath  string
	reportPath string
	outputDir  string
}

func setupCLITestEnv(t *testing.T, apiBaseURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		cachePath:  filepath.Join(base, "videoMetadata.json"),
		reportPath: filepath.Join(base, "download-report.csv"),
		outputDir:  filepath.Join(base, "out"),
	}

	body := fmt.Sprintf(`[paths]
output_dir = %q
cache_file = %q
report_file = %q
lock_file = %q

[stream]
api_base_url = %q
access_token = "test-token"
request_timeout = 5

[naming]
template = "{title}"
format = "mp4"

[logging]
format = "console"
level = "error"
`, env.outputDir, env.cachePath, env.reportPath, filepath.Join(base, "streamfetch.lock"), apiBaseURL)

	if err := os.WriteFile(env.configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STREAMFETCH_ACCESS_TOKEN", "")
	return env
}

func cachedVideo(id, title string) video.Video {
	return video.Video{
		UniqueID:       id,
		Title:          title,
		Duration:       "00.42.00",
		PublishDate:    "2021-03-01",
		PublishTime:    "10.00.00",
		Author:         "Dana Ellis",
		AuthorEmail:    "dana@example.edu",
		TotalChunks:    42,
		PlaybackURL:    "https://cdn.example.edu/master.m3u8",
		PosterImageURL: "https://cdn.example.edu/poster.jpg",
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}
