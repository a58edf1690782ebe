package slack

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// ReactionRepository はSlack APIを使用してリアクションを取得・追加するリポジトリ
type ReactionRepository struct {
	client *slack.Client
}

// NewReactionRepository は新しいReactionRepositoryを作成する
func NewReactionRepository(client *slack.Client) *ReactionRepository {
	return &ReactionRepository{
		client: client,
	}
}

// Get は指定したメッセージの現在のリアクション一覧を取得する
func (r *ReactionRepository) Get(ctx context.Context, channelID, timestamp string) ([]domain.Reaction, error) {
	item := slack.NewRefToMessage(channelID, timestamp)
	params := slack.GetReactionsParameters{Full: true}

	itemReactions, err := withRetry(ctx, func() ([]slack.ItemReaction, error) {
		return r.client.GetReactionsContext(ctx, item, params)
	})
	if err != nil {
		return nil, fmt.Errorf("リアクション取得エラー: %w", err)
	}

	reactions := make([]domain.Reaction, 0, len(itemReactions))
	for _, ir := range itemReactions {
		reactions = append(reactions, domain.Reaction{
			Name:  ir.Name,
			Users: ir.Users,
		})
	}
	return reactions, nil
}

// Add は指定したメッセージにリアクションを追加する
// 既存の場合は domain.ErrAlreadyReacted、上限到達の場合は domain.ErrTooManyReactions を返す
func (r *ReactionRepository) Add(ctx context.Context, channelID, timestamp, emojiName string) error {
	item := slack.NewRefToMessage(channelID, timestamp)

	_, err := withRetry(ctx, func() (struct{}, error) {
		return struct{}{}, r.client.AddReactionContext(ctx, emojiName, item)
	})
	if err != nil {
		mapped := mapReactionError(err)
		if errors.Is(mapped, domain.ErrAlreadyReacted) || errors.Is(mapped, domain.ErrTooManyReactions) {
			return mapped
		}
		return fmt.Errorf("リアクション追加エラー: %w", err)
	}
	return nil
}
