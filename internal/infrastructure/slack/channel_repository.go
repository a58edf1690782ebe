package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// ChannelRepository はSlack APIを使用してチャンネル情報を取得するリポジトリ
type ChannelRepository struct {
	client *slack.Client
}

// NewChannelRepository は新しいChannelRepositoryを作成する
func NewChannelRepository(client *slack.Client) *ChannelRepository {
	return &ChannelRepository{
		client: client,
	}
}

// channelsPage はチャンネル一覧1ページ分の取得結果
type channelsPage struct {
	channels []slack.Channel
	cursor   string
}

// FindByName はチャンネル名からチャンネルを検索する
func (r *ChannelRepository) FindByName(ctx context.Context, name string) (*domain.Channel, error) {
	params := &slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           1000,
	}

	for {
		page, err := withRetry(ctx, func() (channelsPage, error) {
			channels, cursor, err := r.client.GetConversationsContext(ctx, params)
			return channelsPage{channels: channels, cursor: cursor}, err
		})
		if err != nil {
			return nil, fmt.Errorf("チャンネル一覧取得エラー: %w", err)
		}

		for _, conversation := range page.channels {
			if conversation.Name == name {
				return &domain.Channel{
					ID:   conversation.ID,
					Name: conversation.Name,
				}, nil
			}
		}

		if page.cursor == "" {
			return nil, fmt.Errorf("チャンネル '%s' が見つかりません", name)
		}
		params.Cursor = page.cursor
	}
}
