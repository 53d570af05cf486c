package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pfrederiksen/bigmatches/internal/competition"
	"github.com/pfrederiksen/bigmatches/internal/config"
	"github.com/pfrederiksen/bigmatches/internal/feed"
	"github.com/pfrederiksen/bigmatches/internal/logger"
	"github.com/pfrederiksen/bigmatches/internal/merge"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "bigmatches",
		Short: "Merge football calendar feeds into a big-matches calendar",
		Long: `Fetches the calendar feeds listed in sources.yaml, keeps only fixtures
where both teams are big clubs of the competition, and writes them to a
single .ics file.

Settings can also be given as BIGMATCHES_* environment variables or in a
.env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, v)
		},
	}

	cmd.Flags().String("sources", config.DefaultSourcesPath, "YAML file mapping competitions to feed URLs")
	cmd.Flags().String("out", config.DefaultOutPath, "Path of the merged calendar file")
	cmd.Flags().String("calendar-name", v.GetString("calendar_name"), "Display name of the merged calendar")
	cmd.Flags().Duration("timeout", feed.Timeout, "Timeout for each feed download")
	cmd.Flags().String("user-agent", feed.UserAgent, "User-Agent header for feed requests")
	cmd.Flags().String("sort", "source", "Event order: source or start")
	cmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error")
	cmd.Flags().Bool("verbose", false, "Enable debug logging (same as --log-level debug)")

	for key, flag := range map[string]string{
		"sources":       "sources",
		"out":           "out",
		"calendar_name": "calendar-name",
		"timeout":       "timeout",
		"user_agent":    "user-agent",
		"sort":          "sort",
		"log_level":     "log-level",
		"verbose":       "verbose",
	} {
		v.BindPFlag(key, cmd.Flags().Lookup(flag)) // nolint:errcheck
	}

	return cmd
}

// runMerge is the main command logic
func runMerge(cmd *cobra.Command, v *viper.Viper) error {
	settings, err := config.LoadSettings(v)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	logger.SetDefault(logger.New(settings.LogLevel, cmd.ErrOrStderr()))

	sources, err := config.LoadSources(settings.SourcesPath)
	if err != nil {
		if errors.Is(err, config.ErrSourcesMissing) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Missing %s. See README.md.\n", filepath.Base(settings.SourcesPath))
		}
		return err
	}

	logger.Debug("Loaded sources", logger.Fields{
		"path":   settings.SourcesPath,
		"labels": len(sources),
	})
	for _, key := range competition.Keys() {
		logger.Debug("Big teams", logger.Fields{
			"competition": string(key),
			"teams":       competition.BigTeams(key),
		})
	}
	for _, src := range sources {
		if _, ok := competition.Lookup(src.Label); !ok {
			logger.Debug("Label is not a competition, guessing from event text", logger.Fields{
				"label": src.Label,
			})
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fetcher := feed.New(
		feed.WithTimeout(settings.Timeout),
		feed.WithUserAgent(settings.UserAgent),
	)
	merger := merge.New(fetcher, settings.CalendarName)
	result := merger.Run(ctx, sources)

	data := []byte(result.Calendar.Serialize(settings.Sort))
	if err := os.WriteFile(settings.OutPath, data, 0644); err != nil {
		logger.Error("Failed to write calendar", logger.Fields{"out": settings.OutPath}, err)
		return fmt.Errorf("writing calendar: %w", err)
	}
	logger.Info("Wrote calendar", logger.Fields{
		"out":          settings.OutPath,
		"entries":      result.Calendar.Len(),
		"failed_feeds": len(result.FailedFeeds),
	})

	if settings.Verbose {
		logger.Debug("Run metrics", logger.Fields{
			"metrics":      merger.Metrics().GetSnapshot(),
			"failed_feeds": result.FailedFeeds,
			"entries":      result.Calendar.Len(),
		})
	}

	summary := &Summary{
		EventsIn:   result.EventsIn,
		EventsKept: result.EventsKept,
		Out:        settings.OutPath,
	}
	if err := WriteSummary(cmd.OutOrStdout(), summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
