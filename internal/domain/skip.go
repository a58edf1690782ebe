package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// SkipReason はメッセージをスキップした理由を表す
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipAuthor          SkipReason = "author_user_id"
	SkipStandupReminder SkipReason = "standup_reminder"
	SkipWorkflowFrom    SkipReason = "workflow_from"
	SkipContentMatch    SkipReason = "content_match"
)

// SkipConfig はリアクションを付けてはいけないメッセージの判定ルール
// 実行ごとに環境変数とユーザー情報から一度だけ構築され、以後不変
type SkipConfig struct {
	TargetUserID      string
	Aliases           []string
	ContentSubstrings []string
	ContentRegexp     *regexp.Regexp
	Debug             bool

	workflowFrom *regexp.Regexp
}

// NewSkipConfig はスキップ設定を構築する
// ワークフロー帰属判定の正規表現はここで一度だけコンパイルする
func NewSkipConfig(targetUserID string, aliases []string, substrings []string, contentRe *regexp.Regexp, debug bool) *SkipConfig {
	c := &SkipConfig{
		TargetUserID:      targetUserID,
		Aliases:           aliases,
		ContentSubstrings: substrings,
		ContentRegexp:     contentRe,
		Debug:             debug,
	}
	c.workflowFrom = buildWorkflowFromPattern(targetUserID, aliases)
	return c
}

// buildWorkflowFromPattern は "from: <対象ユーザーへの言及>" を検出する正規表現を作る
// ID・メンション・別名のいずれでも一致し、大文字小文字は区別しない
func buildWorkflowFromPattern(targetUserID string, aliases []string) *regexp.Regexp {
	if targetUserID == "" {
		return nil
	}

	alts := []string{
		regexp.QuoteMeta("<@" + targetUserID + ">"),
		wordBounded(targetUserID),
	}
	for _, a := range aliases {
		if a == "" {
			continue
		}
		alts = append(alts, wordBounded(a))
	}

	return regexp.MustCompile(fmt.Sprintf(`(?i)from:\s*(?:%s)`, strings.Join(alts, "|")))
}

// wordBounded は文字列の端が単語文字の場合にのみ \b を付けてエスケープする
// "@tattsum" のように端が記号の別名では \b が隣接語文字を要求して一致しなくなるため
func wordBounded(s string) string {
	quoted := regexp.QuoteMeta(s)
	if isWordByte(s[0]) {
		quoted = `\b` + quoted
	}
	if isWordByte(s[len(s)-1]) {
		quoted += `\b`
	}
	return quoted
}

// isWordByte は正規表現の \b が単語文字とみなすASCII文字かを返す
func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('A' <= b && b <= 'Z') ||
		('a' <= b && b <= 'z')
}

// MatchesAuthor はメッセージの投稿者が対象ユーザー本人かどうかを返す
func (c *SkipConfig) MatchesAuthor(userID string) bool {
	return c.TargetUserID != "" && userID == c.TargetUserID
}

// MatchesWorkflowFrom はいずれかの文字列にワークフローの "from:" 帰属が含まれるかを返す
// 対象ユーザーの代わりに共用の自動投稿アカウントが投稿したメッセージを検出する
func (c *SkipConfig) MatchesWorkflowFrom(texts []string) bool {
	if c.workflowFrom == nil {
		return false
	}
	for _, t := range texts {
		if c.workflowFrom.MatchString(t) {
			return true
		}
	}
	return false
}

// MatchesContent は設定されたスキップ文字列・正規表現にいずれかの文字列が一致するかを返す
// 文字列一致は大文字小文字を区別しない
func (c *SkipConfig) MatchesContent(texts []string) bool {
	for _, t := range texts {
		lower := strings.ToLower(t)
		for _, sub := range c.ContentSubstrings {
			if sub == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(sub)) {
				return true
			}
		}
		if c.ContentRegexp != nil && c.ContentRegexp.MatchString(t) {
			return true
		}
	}
	return false
}

// standupReminderPhrases は既知のスタンドアップ通知文言
// リマインダー投稿にはリアクションを付けない
var standupReminderPhrases = []string{
	"it's time for your daily standup",
	"time for standup",
	"daily standup reminder",
	"don't forget to post your standup",
}

// smartQuoteFolder はスマートクォートをASCIIに正規化する
var smartQuoteFolder = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// ContainsStandupReminder は文字列群にスタンドアップ通知の文言が含まれるかを返す
// 連結・小文字化・スマートクォート正規化の上で部分一致を取る
func ContainsStandupReminder(texts []string) bool {
	if len(texts) == 0 {
		return false
	}
	joined := strings.ToLower(smartQuoteFolder.Replace(strings.Join(texts, " ")))
	for _, phrase := range standupReminderPhrases {
		if strings.Contains(joined, phrase) {
			return true
		}
	}
	return false
}
