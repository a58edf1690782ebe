package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMessage_HasReactions(t *testing.T) {
	tests := []struct {
		name     string
		message  *Message
		expected bool
	}{
		{
			name: "リアクションあり",
			message: &Message{
				Reactions: []Reaction{
					{Name: "thumbsup", Users: []string{"U001"}},
				},
			},
			expected: true,
		},
		{
			name:     "リアクションなし",
			message:  &Message{Reactions: []Reaction{}},
			expected: false,
		},
		{
			name:     "リアクションがnil",
			message:  &Message{Reactions: nil},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.message.HasReactions(); got != tt.expected {
				t.Errorf("HasReactions() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMessage_IsThreadParent(t *testing.T) {
	tests := []struct {
		name     string
		message  *Message
		expected bool
	}{
		{
			name:     "スレッドの親メッセージ",
			message:  &Message{Timestamp: "1700000000.000100", ThreadTS: "1700000000.000100"},
			expected: true,
		},
		{
			name:     "通常のメッセージ",
			message:  &Message{Timestamp: "1700000000.000100", ThreadTS: ""},
			expected: false,
		},
		{
			name:     "スレッドの返信",
			message:  &Message{Timestamp: "1700000000.000200", ThreadTS: "1700000000.000100"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.message.IsThreadParent(); got != tt.expected {
				t.Errorf("IsThreadParent() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMessage_HasReactionBy(t *testing.T) {
	msg := &Message{
		Reactions: []Reaction{
			{Name: "rocket", Users: []string{"U001", "U002"}},
			{Name: "raised_hands::skin-tone-3", Users: []string{"U003"}},
		},
	}

	tests := []struct {
		name      string
		userID    string
		canonical string
		expected  bool
	}{
		{
			name:      "基本名で既に付けている",
			userID:    "U001",
			canonical: "rocket",
			expected:  true,
		},
		{
			name:      "スキントーン付きでも基本名で一致",
			userID:    "U003",
			canonical: "raised_hands",
			expected:  true,
		},
		{
			name:      "別のユーザーは一致しない",
			userID:    "U999",
			canonical: "rocket",
			expected:  false,
		},
		{
			name:      "付けていない絵文字",
			userID:    "U001",
			canonical: "eyes",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := msg.HasReactionBy(tt.userID, tt.canonical); got != tt.expected {
				t.Errorf("HasReactionBy(%q, %q) = %v, want %v", tt.userID, tt.canonical, got, tt.expected)
			}
		})
	}
}

func TestMessage_AllTexts(t *testing.T) {
	tests := []struct {
		name     string
		message  *Message
		expected []string
	}{
		{
			name:     "収集済みのTextsを優先",
			message:  &Message{Text: "本文", Texts: []string{"本文", "添付のタイトル"}},
			expected: []string{"本文", "添付のタイトル"},
		},
		{
			name:     "Textsが空なら本文のみ",
			message:  &Message{Text: "本文"},
			expected: []string{"本文"},
		},
		{
			name:     "本文も空ならnil",
			message:  &Message{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, tt.message.AllTexts()); diff != "" {
				t.Errorf("AllTexts() の差分 (-want +got):\n%s", diff)
			}
		})
	}
}
