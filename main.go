package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"github.com/Tattsum/slack-reaction-mirror/internal/config"
	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
	slackinfra "github.com/Tattsum/slack-reaction-mirror/internal/infrastructure/slack"
)

var rootCmd = &cobra.Command{
	Use:           "slack-reaction-mirror",
	Short:         "対象ユーザーの投稿へのリアクションを自分のアカウントで同期するツール",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// .env があれば読み込む（なくてもよい）
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		logger := newLogger(false)
		if errors.Is(err, config.ErrMissing) {
			logger.Error().Err(err).Msg("設定エラー")
			os.Exit(2)
		}
		logger.Error().Err(err).Msg("実行エラー")
		os.Exit(1)
	}
}

// newLogger は操作者向けのロガーを作成する
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// channelIDPattern はチャンネルIDらしい文字列の判定
var channelIDPattern = regexp.MustCompile(`^[CDG][A-Z0-9]{7,}$`)

// resolveChannelID はチャンネル指定（名前またはID）をチャンネルIDに解決する
func resolveChannelID(ctx context.Context, api *slack.Client, channel string) (string, error) {
	if channelIDPattern.MatchString(channel) {
		return channel, nil
	}
	repo := slackinfra.NewChannelRepository(api)
	ch, err := repo.FindByName(ctx, channel)
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

// buildSkipConfig は認証済みアカウントと対象ユーザーの情報からスキップ設定を構築する
// 戻り値は（リアクションを付けるアカウントのID, スキップ設定, エラー）
func buildSkipConfig(ctx context.Context, userRepo *slackinfra.UserRepository, cfg *config.Config, logger zerolog.Logger) (string, *domain.SkipConfig, error) {
	me, err := userRepo.Identity(ctx)
	if err != nil {
		return "", nil, err
	}

	targetID := cfg.TargetUserID
	if targetID == "" {
		targetID = me.ID
	}

	target := me
	if targetID != me.ID {
		target, err = userRepo.FindByID(ctx, targetID)
		if err != nil {
			// 別名が取れなくてもID一致のスキップは機能する
			logger.Warn().Err(err).Str("user", targetID).Msg("対象ユーザーの情報が取得できませんでした")
			target = &domain.User{ID: targetID}
		}
	}

	re, err := cfg.CompileSkipContentRegex()
	if err != nil {
		return "", nil, err
	}

	logger.Debug().
		Str("actor", me.ID).
		Str("target", targetID).
		Strs("aliases", target.Aliases()).
		Msg("スキップ設定を構築しました")

	skip := domain.NewSkipConfig(targetID, target.Aliases(), cfg.SkipContentSubstrings, re, cfg.Debug)
	return me.ID, skip, nil
}

// requireChannel はフラグまたは環境変数からチャンネル指定を取り出す
func requireChannel(flagValue string, cfg *config.Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.ChannelID != "" {
		return cfg.ChannelID, nil
	}
	return "", fmt.Errorf("%w: --channel または環境変数 SLACK_CHANNEL_ID を指定してください", config.ErrMissing)
}
