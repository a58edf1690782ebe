package slack

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// pageLimit は1回の取得で要求するメッセージ数
const pageLimit = 200

// MessageRepository はSlack APIを使用してメッセージを取得するリポジトリ
type MessageRepository struct {
	client *slack.Client
}

// NewMessageRepository は新しいMessageRepositoryを作成する
func NewMessageRepository(client *slack.Client) *MessageRepository {
	return &MessageRepository{
		client: client,
	}
}

// EachMessagePage はチャンネルのメッセージをページ単位で取得してfnに渡す
// fnがfalseを返した時点で以降のページは取得しない
func (r *MessageRepository) EachMessagePage(ctx context.Context, channelID string, tr *domain.TimeRange, fn func(page []*domain.Message) (bool, error)) error {
	params := slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    tr.Oldest(),
		Latest:    tr.Latest(),
		Limit:     pageLimit,
		Inclusive: true,
	}

	for {
		history, err := withRetry(ctx, func() (*slack.GetConversationHistoryResponse, error) {
			return r.client.GetConversationHistoryContext(ctx, &params)
		})
		if err != nil {
			return fmt.Errorf("メッセージ取得エラー: %w", err)
		}

		page := make([]*domain.Message, 0, len(history.Messages))
		for i := range history.Messages {
			page = append(page, convertMessage(&history.Messages[i], channelID))
		}

		cont, err := fn(page)
		if err != nil {
			return err
		}
		if !cont || !history.HasMore {
			return nil
		}
		params.Cursor = history.ResponseMetaData.NextCursor
	}
}

// FindThreadReplies はスレッドの返信を取得する（親メッセージは含まない）
func (r *MessageRepository) FindThreadReplies(ctx context.Context, channelID string, threadTS string, tr *domain.TimeRange) ([]*domain.Message, error) {
	params := slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: threadTS,
		Oldest:    tr.Oldest(),
		Latest:    tr.Latest(),
		Limit:     pageLimit,
	}

	var messages []*domain.Message
	for {
		page, err := withRetry(ctx, func() (repliesPage, error) {
			msgs, hasMore, cursor, err := r.client.GetConversationRepliesContext(ctx, &params)
			return repliesPage{msgs: msgs, hasMore: hasMore, cursor: cursor}, err
		})
		if err != nil {
			return nil, fmt.Errorf("スレッドメッセージ取得エラー: %w", err)
		}

		replies := page.msgs
		for i := range replies {
			// 先頭に含まれる親メッセージはスキップする
			if replies[i].Timestamp == threadTS {
				continue
			}
			msg := convertMessage(&replies[i], channelID)
			if tr != nil {
				t, err := parseSlackTimestamp(msg.Timestamp)
				if err == nil && !tr.Contains(t) {
					continue
				}
			}
			messages = append(messages, msg)
		}

		if !page.hasMore {
			return messages, nil
		}
		params.Cursor = page.cursor
	}
}

// repliesPage はスレッド返信1ページ分の取得結果
type repliesPage struct {
	msgs    []slack.Message
	hasMore bool
	cursor  string
}

// convertMessage はSlackのMessageをドメインモデルに変換する
func convertMessage(msg *slack.Message, channelID string) *domain.Message {
	reactions := make([]domain.Reaction, 0, len(msg.Reactions))
	for _, reaction := range msg.Reactions {
		reactions = append(reactions, domain.Reaction{
			Name:  reaction.Name,
			Users: reaction.Users,
		})
	}

	return &domain.Message{
		ChannelID:  channelID,
		Timestamp:  msg.Timestamp,
		UserID:     msg.User,
		Text:       msg.Text,
		Texts:      collectMessageTexts(msg),
		ReplyCount: msg.ReplyCount,
		ThreadTS:   msg.ThreadTimestamp,
		Reactions:  reactions,
	}
}

// parseSlackTimestamp はSlackのタイムスタンプ文字列をtime.Timeに変換する
func parseSlackTimestamp(ts string) (time.Time, error) {
	parts := strings.Split(ts, ".")
	if len(parts) == 0 || parts[0] == "" {
		return time.Time{}, fmt.Errorf("無効なタイムスタンプ: %s", ts)
	}

	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("タイムスタンプ解析エラー: %w", err)
	}

	return time.Unix(sec, 0), nil
}
