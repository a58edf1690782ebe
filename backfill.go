package main

import (
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"github.com/Tattsum/slack-reaction-mirror/internal/config"
	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
	slackinfra "github.com/Tattsum/slack-reaction-mirror/internal/infrastructure/slack"
	"github.com/Tattsum/slack-reaction-mirror/internal/service"
)

var (
	backfillChannel       string
	backfillOldest        string
	backfillLatest        string
	backfillThreadReplies bool
	backfillAddDefaults   bool
	backfillDryRun        bool
	backfillMaxMessages   int
	backfillMaxAdds       int
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "チャンネルの過去メッセージを走査してリアクションを同期する",
	RunE:  runBackfill,
}

func init() {
	f := backfillCmd.Flags()
	f.StringVar(&backfillChannel, "channel", "", "対象チャンネル（名前またはID。省略時は SLACK_CHANNEL_ID）")
	f.StringVar(&backfillOldest, "oldest", "", "開始日時（YYYY-MM-DD または UNIX秒）")
	f.StringVar(&backfillLatest, "latest", "", "終了日時（YYYY-MM-DD または UNIX秒）")
	f.BoolVar(&backfillThreadReplies, "include-thread-replies", false, "スレッドの返信も処理する")
	f.BoolVar(&backfillAddDefaults, "add-default-reactions", false, "リアクションのないメッセージにデフォルトを付ける")
	f.BoolVar(&backfillDryRun, "dry-run", false, "追加を実行せずにログに出力する")
	f.IntVar(&backfillMaxMessages, "max-messages", 0, "処理メッセージ数の上限（0は無制限）")
	f.IntVar(&backfillMaxAdds, "max-adds", 0, "追加リアクション数の上限（0は無制限）")

	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Debug)
	ctx := cmd.Context()

	channel, err := requireChannel(backfillChannel, cfg)
	if err != nil {
		return err
	}
	tr, err := domain.NewTimeRange(backfillOldest, backfillLatest)
	if err != nil {
		return err
	}
	filter, err := cfg.BuildReactionFilter()
	if err != nil {
		return err
	}

	api := slack.New(cfg.UserToken)
	userRepo := slackinfra.NewUserRepository(api)

	actorID, skip, err := buildSkipConfig(ctx, userRepo, cfg, logger)
	if err != nil {
		return err
	}
	channelID, err := resolveChannelID(ctx, api, channel)
	if err != nil {
		return err
	}

	reconciler := service.NewReconciler(actorID, skip, filter, service.Options{
		DryRun:           backfillDryRun,
		AddDefaults:      backfillAddDefaults,
		DefaultReactions: cfg.DefaultReactions,
	})
	scanner := service.NewScanner(
		slackinfra.NewMessageRepository(api),
		slackinfra.NewReactionRepository(api),
		reconciler,
		service.ScanOptions{
			IncludeThreadReplies: backfillThreadReplies,
			MaxMessages:          backfillMaxMessages,
			MaxAdds:              backfillMaxAdds,
		},
		logger,
	)

	logger.Info().
		Str("channel", channelID).
		Str("oldest", backfillOldest).
		Str("latest", backfillLatest).
		Bool("dry_run", backfillDryRun).
		Msg("走査を開始します")

	summary, err := scanner.Scan(ctx, channelID, tr)
	if err != nil {
		return err
	}

	logger.Info().
		Int("messages_processed", summary.MessagesProcessed).
		Int("reactions_added", summary.ReactionsAdded).
		Int("skipped_already_reacted", summary.SkippedAlreadyReacted).
		Int("skipped_own_message", summary.SkippedOwnMessage).
		Int("skipped_has_reactions", summary.SkippedHasReactions).
		Int("skipped_blacklisted", summary.SkippedBlacklisted).
		Msg("走査が完了しました")

	return nil
}
