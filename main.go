package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/researchaccelerator-hub/youtube-classifier/client"
	"github.com/researchaccelerator-hub/youtube-classifier/common"
	"github.com/researchaccelerator-hub/youtube-classifier/crawl"
	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/researchaccelerator-hub/youtube-classifier/state"
	"github.com/researchaccelerator-hub/youtube-classifier/transcript"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	resultFilename      = "video_analysis_result.csv"
	debugMergedFilename = "debug_merged_data.csv"
	summaryRowLimit     = 10
)

var rootCmd = &cobra.Command{
	Use:   "youtube-classifier",
	Short: "Classify a YouTube channel's videos by transcript keyword density",
	Long: `youtube-classifier resolves the channels behind a set of seed video ids,
enumerates each channel's full upload catalog, fetches per-video metadata and
caption transcripts, and classifies every video into a content category by
keyword density. Results are written as a single CSV file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context())
	},
}

var transcriptCmd = &cobra.Command{
	Use:   "transcript <video-id>",
	Short: "Fetch and print the normalized transcript of a single video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTranscript(cmd.Context(), args[0])
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("api-key", "", "YouTube Data API key")
	flags.StringSlice("video-ids", nil, "Comma-separated seed video ids")
	flags.String("video-id-file", "", "File containing seed video ids, one per line")
	flags.String("title-filter", "", "Keep only videos whose title contains this substring")
	flags.StringSlice("subtitle-langs", []string{"ja"}, "Preferred caption languages, in order")
	flags.String("output-dir", "output", "Directory for the result CSV")
	flags.String("ytdlp-path", "yt-dlp", "Path to the yt-dlp executable")
	flags.Float64("threshold", 0.5, "Keyword-density threshold in matches per minute")
	flags.Bool("verbose", false, "Enable debug logging and debug artifacts")

	for key, flag := range map[string]string{
		"api_key":        "api-key",
		"video_ids":      "video-ids",
		"video_id_file":  "video-id-file",
		"title_filter":   "title-filter",
		"subtitle_langs": "subtitle-langs",
		"output_dir":     "output-dir",
		"ytdlp_path":     "ytdlp-path",
		"threshold":      "threshold",
		"debug":          "verbose",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatal().Err(err).Str("flag", flag).Msg("Failed to bind flag")
		}
	}

	// Environment variables keep the original configuration surface.
	for key, env := range map[string]string{
		"api_key":        "YOUTUBE_API_KEY",
		"video_ids":      "VIDEO_IDS",
		"title_filter":   "TITLE_FILTER",
		"subtitle_langs": "SUBTITLE_LANGS",
		"output_dir":     "OUTPUT_DIR",
		"debug":          "DEBUG",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatal().Err(err).Str("env", env).Msg("Failed to bind environment variable")
		}
	}

	rootCmd.AddCommand(transcriptCmd)
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Run failed")
	}
}

// buildConfig assembles the pipeline configuration from flags and
// environment variables.
func buildConfig() (common.PipelineConfig, error) {
	cfg := common.PipelineConfig{
		APIKey:        strings.TrimSpace(viper.GetString("api_key")),
		TitleFilter:   strings.TrimSpace(viper.GetString("title_filter")),
		SubtitleLangs: splitConfigList(viper.GetStringSlice("subtitle_langs")),
		OutputDir:     strings.TrimSpace(viper.GetString("output_dir")),
		YtdlpPath:     viper.GetString("ytdlp_path"),
		Threshold:     viper.GetFloat64("threshold"),
		RunID:         common.GenerateRunID(),
		Debug:         viper.GetBool("debug"),
	}

	cfg.SeedVideoIDs = splitConfigList(viper.GetStringSlice("video_ids"))
	if idFile := viper.GetString("video_id_file"); idFile != "" {
		fileIDs, err := common.ReadIDsFromFile(idFile)
		if err != nil {
			return cfg, err
		}
		cfg.SeedVideoIDs = append(cfg.SeedVideoIDs, fileIDs...)
	}

	// Per-run scratch directory for caption files.
	cfg.StagingDir = filepath.Join(os.TempDir(), "yt-subs-"+uuid.NewString())

	return cfg, nil
}

// splitConfigList re-splits list values so a single comma-separated
// environment variable and repeated flags both work.
func splitConfigList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, common.SplitList(v)...)
	}
	return out
}

func configureLogging(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// runPipeline executes a full classification run and writes the result CSV.
func runPipeline(ctx context.Context) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	configureLogging(cfg.Debug)

	// Credential and seed checks happen before any network activity.
	if err := cfg.Validate(); err != nil {
		return err
	}

	ytClient, err := client.NewYouTubeDataClient(cfg.APIKey)
	if err != nil {
		return err
	}
	if err := ytClient.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if err := ytClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("Error disconnecting YouTube client")
		}
	}()

	extractor := transcript.NewExtractor(cfg.StagingDir, cfg.SubtitleLangs)
	extractor.Path = cfg.YtdlpPath
	defer cleanupStaging(cfg.StagingDir)

	runner := crawl.NewRunner(ytClient, extractor, cfg)
	records, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	store, err := state.NewCSVStore(cfg.OutputDir)
	if err != nil {
		return err
	}

	if cfg.Debug {
		if _, err := store.SaveMerged(records, debugMergedFilename); err != nil {
			log.Error().Err(err).Msg("Failed to write debug artifact")
		}
	}

	path, err := store.SaveClassified(records, resultFilename)
	if err != nil {
		return err
	}

	logSummary(records)
	log.Info().Str("run_id", cfg.RunID).Str("output", path).Msg("Classification run completed")
	return nil
}

// runTranscript fetches the transcript of one video and prints it.
func runTranscript(ctx context.Context, videoID string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	configureLogging(cfg.Debug)

	extractor := transcript.NewExtractor(cfg.StagingDir, cfg.SubtitleLangs)
	extractor.Path = cfg.YtdlpPath
	defer cleanupStaging(cfg.StagingDir)

	text, err := extractor.Extract(ctx, videoID)
	if err != nil {
		return err
	}
	if text == "" {
		log.Warn().Str("video_id", videoID).Msg("No captions found")
		return nil
	}

	fmt.Println(text)
	return nil
}

// cleanupStaging removes the caption scratch directory. Runs on success and
// failure paths alike.
func cleanupStaging(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Failed to remove staging directory")
		return
	}
	log.Debug().Str("dir", dir).Msg("Staging directory removed")
}

// logSummary emits the leading result rows after a run.
func logSummary(records []*model.ClassifiedRecord) {
	for i, rec := range records {
		if i >= summaryRowLimit {
			break
		}
		title := ""
		if rec.Metadata != nil {
			title = rec.Metadata.Title
		}
		event := log.Info().Str("video_id", rec.VideoID).Str("title", title)
		for name, score := range rec.Scores {
			event = event.Float64(name+"_per_min", score.PerMin)
		}
		event.Str("primary_category", rec.PrimaryCategory).Msg("Result")
	}
}
