package domain

import "strings"

// Reaction はメッセージに付いたリアクション（絵文字）を表すドメインモデル
type Reaction struct {
	Name  string   // 絵文字名（スキントーン付きの場合あり。例: "raised_hands::skin-tone-3"）
	Users []string // このリアクションを付けたユーザーIDの一覧
}

// skinToneSeparator はスキントーン修飾の区切り文字列
const skinToneSeparator = "::skin-tone-"

// CanonicalEmojiName は絵文字名からスキントーン修飾を取り除いた基本名を返す
// スキントーン違いは同一リアクションとして扱う
func CanonicalEmojiName(name string) string {
	if i := strings.Index(name, skinToneSeparator); i >= 0 {
		return name[:i]
	}
	return name
}

// CanonicalName はこのリアクションの基本絵文字名を返す
func (r *Reaction) CanonicalName() string {
	return CanonicalEmojiName(r.Name)
}

// HasUser は指定されたユーザーがこのリアクションを付けているかどうかを返す
func (r *Reaction) HasUser(userID string) bool {
	for _, u := range r.Users {
		if u == userID {
			return true
		}
	}
	return false
}
