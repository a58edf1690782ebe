package slack

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// withRetry はレート制限を透過的に処理してAPI呼び出しを実行する
// レート制限エラーの場合はretry-afterの秒数だけ待って無制限に再試行し、
// それ以外のエラーはそのまま返す
func withRetry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	for {
		v, err := op()
		if err == nil {
			return v, nil
		}

		var rle *slack.RateLimitedError
		if !errors.As(err, &rle) {
			return v, err
		}

		select {
		case <-time.After(rle.RetryAfter):
		case <-ctx.Done():
			return v, ctx.Err()
		}
	}
}

// mapReactionError はリアクション追加のSlackエラーをドメインエラーに対応付ける
func mapReactionError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "already_reacted"):
		return domain.ErrAlreadyReacted
	case strings.Contains(msg, "too_many_reactions"), strings.Contains(msg, "too_many_emoji"):
		return domain.ErrTooManyReactions
	}
	return err
}
