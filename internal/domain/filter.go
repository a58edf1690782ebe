package domain

import (
	"regexp"
	"strings"
)

// ReactionFilter は追加してはいけない絵文字名の判定ルール（ブロックリスト）
// メッセージの内容とは無関係に絵文字名だけで判定する
type ReactionFilter struct {
	exact      map[string]struct{}
	substrings []string
	pattern    *regexp.Regexp
}

// NewReactionFilter はブロックリストを構築する
func NewReactionFilter(exact, substrings []string, pattern *regexp.Regexp) *ReactionFilter {
	f := &ReactionFilter{
		exact:      make(map[string]struct{}, len(exact)),
		substrings: make([]string, 0, len(substrings)),
		pattern:    pattern,
	}
	for _, name := range exact {
		if name == "" {
			continue
		}
		f.exact[name] = struct{}{}
	}
	for _, sub := range substrings {
		if sub == "" {
			continue
		}
		f.substrings = append(f.substrings, sub)
	}
	return f
}

// Blocked は絵文字名がブロック対象かどうかを返す
// 完全一致・部分一致・正規表現のいずれか1つでも該当すればブロックする
func (f *ReactionFilter) Blocked(name string) bool {
	if f == nil {
		return false
	}
	if _, ok := f.exact[name]; ok {
		return true
	}
	for _, sub := range f.substrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	if f.pattern != nil && f.pattern.MatchString(name) {
		return true
	}
	return false
}
