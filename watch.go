package main

import (
	"os/signal"
	"syscall"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"github.com/spf13/cobra"

	"github.com/Tattsum/slack-reaction-mirror/internal/config"
	slackinfra "github.com/Tattsum/slack-reaction-mirror/internal/infrastructure/slack"
	"github.com/Tattsum/slack-reaction-mirror/internal/service"
)

var (
	watchChannel string
	watchDryRun  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Socket Modeで reaction_added イベントを購読してリアクションを同期し続ける",
	RunE:  runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchChannel, "channel", "", "対象チャンネルID（省略時は SLACK_CHANNEL_ID。どちらも空なら全チャンネル）")
	f.BoolVar(&watchDryRun, "dry-run", false, "追加を実行せずにログに出力する")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAppToken(); err != nil {
		return err
	}
	logger := newLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	filter, err := cfg.BuildReactionFilter()
	if err != nil {
		return err
	}

	api := slack.New(cfg.UserToken, slack.OptionAppLevelToken(cfg.AppToken))
	userRepo := slackinfra.NewUserRepository(api)

	actorID, skip, err := buildSkipConfig(ctx, userRepo, cfg, logger)
	if err != nil {
		return err
	}

	channelFilter := watchChannel
	if channelFilter == "" {
		channelFilter = cfg.ChannelID
	}

	watcher := service.NewWatcher(
		slackinfra.NewReactionRepository(api),
		actorID,
		skip,
		filter,
		channelFilter,
		watchDryRun,
		logger,
	)
	feed := slackinfra.NewEventFeed(socketmode.New(api), logger)

	logger.Info().
		Str("channel_filter", channelFilter).
		Bool("dry_run", watchDryRun).
		Msg("イベントの購読を開始します")

	return feed.Run(ctx, watcher.HandleReactionAdded)
}
