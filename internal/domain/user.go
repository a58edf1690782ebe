package domain

// User はSlackユーザーを表すドメインモデル
type User struct {
	ID          string
	Name        string
	DisplayName string
	RealName    string
}

// GetDisplayName は表示名を優先順位に従って返す
// 優先順位: DisplayName > RealName > Name > ID
func (u *User) GetDisplayName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.RealName != "" {
		return u.RealName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// Aliases はこのユーザーを指し得る表記の一覧を返す（重複・空文字列は除く）
// ワークフロー投稿の "from:" 帰属判定に使う
func (u *User) Aliases() []string {
	seen := make(map[string]struct{}, 3)
	aliases := make([]string, 0, 3)
	for _, name := range []string{u.DisplayName, u.RealName, u.Name} {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		aliases = append(aliases, name)
	}
	return aliases
}
