package domain

// Message はSlackメッセージを表すドメインモデル
// (ChannelID, Timestamp) の組で一意に識別される
type Message struct {
	ChannelID  string
	Timestamp  string
	UserID     string
	Text       string
	Texts      []string // 本文・添付・ブロックから収集した全文字列（スキップ判定用）
	ReplyCount int
	ThreadTS   string // スレッドのタイムスタンプ（空文字列の場合は通常メッセージ）
	Reactions  []Reaction
}

// HasReactions はメッセージにリアクションがあるかどうかを返す
func (m *Message) HasReactions() bool {
	return len(m.Reactions) > 0
}

// IsThreadParent はこのメッセージがスレッドの親メッセージかどうかを返す
func (m *Message) IsThreadParent() bool {
	return m.ThreadTS != "" && m.ThreadTS == m.Timestamp
}

// HasReactionBy は指定されたユーザーが基本絵文字名 canonicalName のリアクションを
// （スキントーン違いも含めて）既に付けているかどうかを返す
func (m *Message) HasReactionBy(userID, canonicalName string) bool {
	for i := range m.Reactions {
		if m.Reactions[i].CanonicalName() != canonicalName {
			continue
		}
		if m.Reactions[i].HasUser(userID) {
			return true
		}
	}
	return false
}

// AllTexts はスキップ判定の対象となる文字列一覧を返す
// Texts が収集されていない場合は本文のみを返す
func (m *Message) AllTexts() []string {
	if len(m.Texts) > 0 {
		return m.Texts
	}
	if m.Text == "" {
		return nil
	}
	return []string{m.Text}
}
