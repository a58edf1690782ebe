package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// Watcher は reaction_added イベントを1件ずつ処理するサービス
// イベントは増分1件分の情報しか持たないため、判定前に現在のリアクション一覧を取得し直す
type Watcher struct {
	reactionRepo  domain.ReactionRepository
	actorID       string
	skip          *domain.SkipConfig
	filter        *domain.ReactionFilter
	channelFilter string // 空の場合は全チャンネルを対象にする
	dryRun        bool
	logger        zerolog.Logger
}

// NewWatcher は新しいWatcherサービスを作成する
func NewWatcher(reactionRepo domain.ReactionRepository, actorID string, skip *domain.SkipConfig, filter *domain.ReactionFilter, channelFilter string, dryRun bool, logger zerolog.Logger) *Watcher {
	return &Watcher{
		reactionRepo:  reactionRepo,
		actorID:       actorID,
		skip:          skip,
		filter:        filter,
		channelFilter: channelFilter,
		dryRun:        dryRun,
		logger:        logger,
	}
}

// HandleReactionAdded は1件の reaction_added イベントを処理する
// 自分自身のリアクション（ループ防止）と対象外チャンネルのイベントは無視する
func (w *Watcher) HandleReactionAdded(ctx context.Context, ev domain.ReactionEvent) error {
	if ev.UserID == w.actorID {
		return nil
	}
	if w.channelFilter != "" && ev.ChannelID != w.channelFilter {
		return nil
	}

	name := domain.CanonicalEmojiName(ev.Emoji)
	if name == "" {
		return nil
	}
	if w.filter.Blocked(name) {
		w.logger.Debug().Str("emoji", name).Msg("ブロックリスト対象のためスキップします")
		return nil
	}
	// 対象ユーザー本人のメッセージに加えて、実行アカウント自身の投稿にもリアクションしない
	if w.skip.MatchesAuthor(ev.ItemUserID) || ev.ItemUserID == w.actorID {
		w.logger.Debug().
			Str("channel", ev.ChannelID).
			Str("ts", ev.Timestamp).
			Msg("対象ユーザー本人のメッセージのためスキップします")
		return nil
	}

	// イベントは増分通知なので、最新のリアクション状態を取得して二重追加を防ぐ
	reactions, err := w.reactionRepo.Get(ctx, ev.ChannelID, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("リアクション一覧の取得に失敗しました (channel=%s ts=%s): %w",
			ev.ChannelID, ev.Timestamp, err)
	}
	msg := &domain.Message{
		ChannelID: ev.ChannelID,
		Timestamp: ev.Timestamp,
		Reactions: reactions,
	}
	if msg.HasReactionBy(w.actorID, name) {
		w.logger.Debug().
			Str("channel", ev.ChannelID).
			Str("ts", ev.Timestamp).
			Str("emoji", name).
			Msg("既にリアクション済みのためスキップします")
		return nil
	}

	if w.dryRun {
		w.logger.Info().
			Str("channel", ev.ChannelID).
			Str("ts", ev.Timestamp).
			Str("emoji", name).
			Msg("[dry-run] リアクションを追加します")
		return nil
	}

	err = w.reactionRepo.Add(ctx, ev.ChannelID, ev.Timestamp, name)
	switch {
	case err == nil:
		w.logger.Info().
			Str("channel", ev.ChannelID).
			Str("ts", ev.Timestamp).
			Str("emoji", name).
			Msg("リアクションを追加しました")
		return nil
	case errors.Is(err, domain.ErrAlreadyReacted):
		return nil
	case errors.Is(err, domain.ErrTooManyReactions):
		w.logger.Warn().
			Str("channel", ev.ChannelID).
			Str("ts", ev.Timestamp).
			Str("emoji", name).
			Msg("リアクション数が上限のためスキップします")
		return nil
	default:
		return fmt.Errorf("リアクション追加エラー (channel=%s ts=%s emoji=%s): %w",
			ev.ChannelID, ev.Timestamp, name, err)
	}
}
