package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// Summary は1回の走査の集計結果
// モジュール変数ではなく走査ごとに生成し、戻り値として返す
type Summary struct {
	MessagesProcessed     int
	ReactionsAdded        int
	SkippedAlreadyReacted int
	SkippedOwnMessage     int
	SkippedHasReactions   int // デフォルトモードで既にリアクションがあったメッセージ数
	SkippedBlacklisted    int
}

// ScanOptions は過去分走査の動作設定
type ScanOptions struct {
	IncludeThreadReplies bool
	MaxMessages          int // 0は無制限。処理メッセージ数がこの値に達したら即座に打ち切る
	MaxAdds              int // 0は無制限。追加リアクション数がこの値に達したら即座に打ち切る
}

// errBudgetReached は上限到達による打ち切りを表す内部エラー
var errBudgetReached = errors.New("budget reached")

// Scanner はチャンネルの過去メッセージを走査してリアクションを同期するサービス
type Scanner struct {
	messageRepo  domain.MessageRepository
	reactionRepo domain.ReactionRepository
	reconciler   *Reconciler
	opts         ScanOptions
	dryRun       bool
	logger       zerolog.Logger
}

// NewScanner は新しいScannerサービスを作成する
func NewScanner(messageRepo domain.MessageRepository, reactionRepo domain.ReactionRepository, reconciler *Reconciler, opts ScanOptions, logger zerolog.Logger) *Scanner {
	return &Scanner{
		messageRepo:  messageRepo,
		reactionRepo: reactionRepo,
		reconciler:   reconciler,
		opts:         opts,
		dryRun:       reconciler.opts.DryRun,
		logger:       logger,
	}
}

// Scan はチャンネルの時間範囲内のメッセージをページ単位で走査する
// 上限（MaxMessages / MaxAdds）に達した時点でページネーションを打ち切る
func (s *Scanner) Scan(ctx context.Context, channelID string, tr *domain.TimeRange) (*Summary, error) {
	summary := &Summary{}
	page := 0

	err := s.messageRepo.EachMessagePage(ctx, channelID, tr, func(msgs []*domain.Message) (bool, error) {
		page++
		s.logger.Debug().Int("page", page).Int("messages", len(msgs)).Msg("ページを取得しました")

		for _, msg := range msgs {
			if err := s.processMessage(ctx, msg, summary); err != nil {
				return false, err
			}

			if s.opts.IncludeThreadReplies && msg.IsThreadParent() {
				if err := s.processThread(ctx, channelID, msg.ThreadTS, tr, summary); err != nil {
					return false, err
				}
			}
		}
		return true, nil
	})

	if err != nil && !errors.Is(err, errBudgetReached) {
		return summary, err
	}
	if errors.Is(err, errBudgetReached) {
		s.logger.Info().
			Int("max_messages", s.opts.MaxMessages).
			Int("max_adds", s.opts.MaxAdds).
			Msg("上限に達したため走査を打ち切ります")
	}

	return summary, nil
}

// processThread はスレッドの返信を取得して同じ判定を適用する
func (s *Scanner) processThread(ctx context.Context, channelID, threadTS string, tr *domain.TimeRange, summary *Summary) error {
	replies, err := s.messageRepo.FindThreadReplies(ctx, channelID, threadTS, tr)
	if err != nil {
		return fmt.Errorf("スレッド %s の取得に失敗しました: %w", threadTS, err)
	}
	for _, reply := range replies {
		if err := s.processMessage(ctx, reply, summary); err != nil {
			return err
		}
	}
	return nil
}

// processMessage は1メッセージ分の判定とアクション実行を行う
func (s *Scanner) processMessage(ctx context.Context, msg *domain.Message, summary *Summary) error {
	if s.opts.MaxMessages > 0 && summary.MessagesProcessed >= s.opts.MaxMessages {
		return errBudgetReached
	}
	if s.opts.MaxAdds > 0 && summary.ReactionsAdded >= s.opts.MaxAdds {
		return errBudgetReached
	}
	summary.MessagesProcessed++

	d := s.reconciler.Decide(msg)
	if d.SkipReason != domain.SkipNone {
		if d.SkipReason == domain.SkipAuthor {
			summary.SkippedOwnMessage++
		}
		s.logger.Debug().
			Str("channel", msg.ChannelID).
			Str("ts", msg.Timestamp).
			Str("reason", string(d.SkipReason)).
			Msg("メッセージをスキップしました")
		return nil
	}

	summary.SkippedAlreadyReacted += d.AlreadyReacted
	summary.SkippedBlacklisted += d.Blocked
	if s.reconciler.opts.AddDefaults && msg.HasReactions() {
		summary.SkippedHasReactions++
	}

	for _, action := range d.Actions {
		if s.opts.MaxAdds > 0 && summary.ReactionsAdded >= s.opts.MaxAdds {
			return errBudgetReached
		}
		if err := s.apply(ctx, action, summary); err != nil {
			return err
		}
	}
	return nil
}

// apply は判定結果のアクションを実行する
// already_reacted は成功扱い、too_many_reactions は警告のみで継続する
// ドライランでも追加予定として集計し、実行時と同じ範囲で上限が効くようにする
func (s *Scanner) apply(ctx context.Context, action AddAction, summary *Summary) error {
	if s.dryRun {
		summary.ReactionsAdded++
		s.logger.Info().
			Str("channel", action.ChannelID).
			Str("ts", action.Timestamp).
			Str("emoji", action.Emoji).
			Msg("[dry-run] リアクションを追加します")
		return nil
	}

	err := s.reactionRepo.Add(ctx, action.ChannelID, action.Timestamp, action.Emoji)
	switch {
	case err == nil:
		summary.ReactionsAdded++
		s.logger.Info().
			Str("channel", action.ChannelID).
			Str("ts", action.Timestamp).
			Str("emoji", action.Emoji).
			Msg("リアクションを追加しました")
	case errors.Is(err, domain.ErrAlreadyReacted):
		summary.SkippedAlreadyReacted++
	case errors.Is(err, domain.ErrTooManyReactions):
		s.logger.Warn().
			Str("channel", action.ChannelID).
			Str("ts", action.Timestamp).
			Str("emoji", action.Emoji).
			Msg("リアクション数が上限のためスキップします")
	default:
		s.logger.Error().
			Err(err).
			Str("channel", action.ChannelID).
			Str("ts", action.Timestamp).
			Str("emoji", action.Emoji).
			Msg("リアクションの追加に失敗しました")
		return fmt.Errorf("リアクション追加エラー (channel=%s ts=%s emoji=%s): %w",
			action.ChannelID, action.Timestamp, action.Emoji, err)
	}
	return nil
}
