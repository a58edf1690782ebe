package domain

import "context"

// ChannelRepository はチャンネル情報を取得するリポジトリインターフェース
type ChannelRepository interface {
	FindByName(ctx context.Context, name string) (*Channel, error)
}

// MessageRepository はメッセージを取得するリポジトリインターフェース
// EachMessagePage はサーバーの返す順でページごとに fn を呼び出し、
// fn が false を返すとそれ以上のページを取得せずに打ち切る
type MessageRepository interface {
	EachMessagePage(ctx context.Context, channelID string, tr *TimeRange, fn func(page []*Message) (bool, error)) error
	FindThreadReplies(ctx context.Context, channelID string, threadTS string, tr *TimeRange) ([]*Message, error)
}

// ReactionRepository はリアクションの取得・追加を行うリポジトリインターフェース
// Add は既存の場合 ErrAlreadyReacted、上限到達の場合 ErrTooManyReactions を返す
type ReactionRepository interface {
	Get(ctx context.Context, channelID, timestamp string) ([]Reaction, error)
	Add(ctx context.Context, channelID, timestamp, emojiName string) error
}

// UserRepository はユーザー情報を取得するリポジトリインターフェース
type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*User, error)
	Identity(ctx context.Context) (*User, error)
}
