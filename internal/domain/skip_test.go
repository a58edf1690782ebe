package domain

import (
	"regexp"
	"testing"
)

func TestSkipConfig_MatchesAuthor(t *testing.T) {
	c := NewSkipConfig("U123", nil, nil, nil, false)

	if !c.MatchesAuthor("U123") {
		t.Error("MatchesAuthor(U123) = false, want true")
	}
	if c.MatchesAuthor("U999") {
		t.Error("MatchesAuthor(U999) = true, want false")
	}

	empty := NewSkipConfig("", nil, nil, nil, false)
	if empty.MatchesAuthor("") {
		t.Error("対象ユーザー未設定の場合は常にfalse")
	}
}

func TestSkipConfig_MatchesWorkflowFrom(t *testing.T) {
	c := NewSkipConfig("U123", []string{"tattsum", "Tatsuya M", "@tatsu", "tatsu-m."}, nil, nil, false)

	tests := []struct {
		name     string
		texts    []string
		expected bool
	}{
		{
			name:     "メンション形式",
			texts:    []string{"日報 from: <@U123> です"},
			expected: true,
		},
		{
			name:     "ID直書き",
			texts:    []string{"from: U123"},
			expected: true,
		},
		{
			name:     "別名（大文字小文字を無視）",
			texts:    []string{"From: TATTSUM"},
			expected: true,
		},
		{
			name:     "空白を挟んだ別名",
			texts:    []string{"from:   Tatsuya M さんの投稿"},
			expected: true,
		},
		{
			name:     "記号で始まる別名",
			texts:    []string{"from: @tatsu の日報"},
			expected: true,
		},
		{
			name:     "記号で終わる別名",
			texts:    []string{"from: tatsu-m. 投稿"},
			expected: true,
		},
		{
			name:     "記号で始まる別名も語の途中には一致しない",
			texts:    []string{"from: @tatsuya"},
			expected: false,
		},
		{
			name:     "複数の文字列のうち1つが一致",
			texts:    []string{"本文", "添付: from: <@U123>"},
			expected: true,
		},
		{
			name:     "別ユーザーへの帰属は一致しない",
			texts:    []string{"from: <@U999>"},
			expected: false,
		},
		{
			name:     "単語境界を跨ぐIDは一致しない",
			texts:    []string{"from: U123456の件"},
			expected: false,
		},
		{
			name:     "fromがなければ一致しない",
			texts:    []string{"<@U123> へメンション"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.MatchesWorkflowFrom(tt.texts); got != tt.expected {
				t.Errorf("MatchesWorkflowFrom(%v) = %v, want %v", tt.texts, got, tt.expected)
			}
		})
	}
}

func TestSkipConfig_MatchesContent(t *testing.T) {
	re := regexp.MustCompile(`\[bot\]`)
	c := NewSkipConfig("U123", nil, []string{"リマインダー", "digest"}, re, false)

	tests := []struct {
		name     string
		texts    []string
		expected bool
	}{
		{
			name:     "設定した文字列に部分一致",
			texts:    []string{"これはリマインダーです"},
			expected: true,
		},
		{
			name:     "大文字小文字を区別しない",
			texts:    []string{"Weekly DIGEST 2024-01"},
			expected: true,
		},
		{
			name:     "正規表現に一致",
			texts:    []string{"posted by [bot] daily"},
			expected: true,
		},
		{
			name:     "どれにも一致しない",
			texts:    []string{"通常のメッセージ"},
			expected: false,
		},
		{
			name:     "空の文字列群",
			texts:    nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.MatchesContent(tt.texts); got != tt.expected {
				t.Errorf("MatchesContent(%v) = %v, want %v", tt.texts, got, tt.expected)
			}
		})
	}
}

func TestContainsStandupReminder(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected bool
	}{
		{
			name:     "既知の通知文言",
			texts:    []string{"It's time for your daily standup!"},
			expected: true,
		},
		{
			name:     "スマートクォートも正規化して一致",
			texts:    []string{"It’s time for your daily standup"},
			expected: true,
		},
		{
			name:     "複数文字列の連結後に一致",
			texts:    []string{"Reminder:", "time for standup"},
			expected: true,
		},
		{
			name:     "通常のメッセージ",
			texts:    []string{"standupの議事録を共有します"},
			expected: false,
		},
		{
			name:     "空",
			texts:    nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsStandupReminder(tt.texts); got != tt.expected {
				t.Errorf("ContainsStandupReminder(%v) = %v, want %v", tt.texts, got, tt.expected)
			}
		})
	}
}
