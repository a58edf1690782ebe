package domain

// ReactionEvent はイベントフィードから届いた reaction_added 通知を表す
// イベント自体は増分1件分のリアクションしか持たないため、
// 判定時には現在のリアクション一覧を取得し直す必要がある
type ReactionEvent struct {
	ChannelID  string
	Timestamp  string
	Emoji      string
	UserID     string // リアクションを付けたユーザー
	ItemUserID string // リアクション対象メッセージの投稿者
}
