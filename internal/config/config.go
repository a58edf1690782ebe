// Package config は環境変数からの設定読み込みを行う
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// ErrMissing は必須の認証情報・チャンネル設定が不足していることを示す
// このエラーで終了する場合の終了コードは2
var ErrMissing = errors.New("必須の設定が不足しています")

// Config は環境変数から読み込む実行時設定
type Config struct {
	UserToken                 string
	AppToken                  string
	ChannelID                 string
	TargetUserID              string
	SkipContentSubstrings     []string
	SkipContentRegex          string
	DefaultReactions          []string
	BlockedReactions          []string
	BlockedReactionSubstrings []string
	BlockedReactionRegex      string
	Debug                     bool
}

// Load は環境変数から設定を読み込む
// SLACK_USER_TOKENは全モードで必須
func Load() (*Config, error) {
	c := &Config{
		UserToken:                 os.Getenv("SLACK_USER_TOKEN"),
		AppToken:                  os.Getenv("SLACK_APP_TOKEN"),
		ChannelID:                 os.Getenv("SLACK_CHANNEL_ID"),
		TargetUserID:              os.Getenv("TARGET_USER_ID"),
		SkipContentSubstrings:     parseList(os.Getenv("SKIP_CONTENT_SUBSTRINGS")),
		SkipContentRegex:          os.Getenv("SKIP_CONTENT_REGEX"),
		DefaultReactions:          parseList(os.Getenv("DEFAULT_REACTIONS")),
		BlockedReactions:          parseList(os.Getenv("BLOCKED_REACTIONS")),
		BlockedReactionSubstrings: parseList(os.Getenv("BLOCKED_REACTION_SUBSTRINGS")),
		BlockedReactionRegex:      os.Getenv("BLOCKED_REACTION_REGEX"),
		Debug:                     parseBool(os.Getenv("DEBUG")),
	}

	if c.UserToken == "" {
		return nil, fmt.Errorf("%w: 環境変数 SLACK_USER_TOKEN を設定してください", ErrMissing)
	}

	return c, nil
}

// RequireAppToken はSocket Mode用の認証情報を検証する
func (c *Config) RequireAppToken() error {
	if c.AppToken == "" {
		return fmt.Errorf("%w: 環境変数 SLACK_APP_TOKEN を設定してください", ErrMissing)
	}
	return nil
}

// BuildReactionFilter はブロックリスト設定からフィルタを構築する
func (c *Config) BuildReactionFilter() (*domain.ReactionFilter, error) {
	var pattern *regexp.Regexp
	if c.BlockedReactionRegex != "" {
		re, err := regexp.Compile(c.BlockedReactionRegex)
		if err != nil {
			return nil, fmt.Errorf("BLOCKED_REACTION_REGEX の形式が無効です: %w", err)
		}
		pattern = re
	}
	return domain.NewReactionFilter(c.BlockedReactions, c.BlockedReactionSubstrings, pattern), nil
}

// CompileSkipContentRegex はスキップ用の正規表現をコンパイルする（未設定の場合はnil）
func (c *Config) CompileSkipContentRegex() (*regexp.Regexp, error) {
	if c.SkipContentRegex == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.SkipContentRegex)
	if err != nil {
		return nil, fmt.Errorf("SKIP_CONTENT_REGEX の形式が無効です: %w", err)
	}
	return re, nil
}

// parseList はリスト値の環境変数を解釈する
// JSON配列（例: ["a","b"]）とカンマ区切り（例: a,b）の両方を受け付ける
func parseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") {
		var list []string
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			return trimList(list)
		}
		// JSONとして読めない場合はカンマ区切りとして扱う
	}

	return trimList(strings.Split(s, ","))
}

// trimList は各要素の空白を除去し、空の要素を捨てる
func trimList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// parseBool はデバッグフラグなどの真偽値を解釈する
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
