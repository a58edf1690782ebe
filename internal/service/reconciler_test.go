package service

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

func newTestSkipConfig(targetUserID string, aliases []string) *domain.SkipConfig {
	return domain.NewSkipConfig(targetUserID, aliases, nil, nil, false)
}

func TestReconciler_Decide_スキップ判定(t *testing.T) {
	tests := []struct {
		name       string
		skip       *domain.SkipConfig
		message    *domain.Message
		wantReason domain.SkipReason
	}{
		{
			name: "対象ユーザー本人の投稿はリアクション状態に関わらずスキップ",
			skip: newTestSkipConfig("U123", nil),
			message: &domain.Message{
				UserID: "U123",
				Reactions: []Reaction{
					{Name: "rocket", Users: []string{"U001"}},
				},
			},
			wantReason: domain.SkipAuthor,
		},
		{
			name: "実行アカウント自身の投稿は対象ユーザーと別人でもスキップ",
			skip: newTestSkipConfig("U123", nil),
			message: &domain.Message{
				UserID: "UME",
				Reactions: []Reaction{
					{Name: "rocket", Users: []string{"U001"}},
				},
			},
			wantReason: domain.SkipAuthor,
		},
		{
			name: "スタンドアップ通知はスキップ",
			skip: newTestSkipConfig("U123", nil),
			message: &domain.Message{
				UserID: "U999",
				Text:   "It’s time for your daily standup",
			},
			wantReason: domain.SkipStandupReminder,
		},
		{
			name: "ワークフローのfrom帰属はリアクション有無に関わらずスキップ",
			skip: newTestSkipConfig("U123", []string{"tattsum"}),
			message: &domain.Message{
				UserID: "UWORKFLOW",
				Text:   "日報 from: <@U123>",
				Reactions: []Reaction{
					{Name: "rocket", Users: []string{"U001"}},
				},
			},
			wantReason: domain.SkipWorkflowFrom,
		},
		{
			name: "設定したスキップ文字列に一致（大文字小文字を無視）",
			skip: domain.NewSkipConfig("U123", nil, []string{"reminder"}, nil, false),
			message: &domain.Message{
				UserID: "U999",
				Text:   "Weekly REMINDER: 掃除当番",
			},
			wantReason: domain.SkipContentMatch,
		},
		{
			name: "設定した正規表現に一致",
			skip: domain.NewSkipConfig("U123", nil, nil, regexp.MustCompile(`\[自動\]`), false),
			message: &domain.Message{
				UserID: "U999",
				Text:   "[自動] ビルド結果",
			},
			wantReason: domain.SkipContentMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReconciler("UME", tt.skip, domain.NewReactionFilter(nil, nil, nil), Options{})
			d := r.Decide(tt.message)
			if d.SkipReason != tt.wantReason {
				t.Errorf("SkipReason = %q, want %q", d.SkipReason, tt.wantReason)
			}
			if len(d.Actions) != 0 {
				t.Errorf("スキップ時のActions = %v, want 空", d.Actions)
			}
		})
	}
}

// 型エイリアスでテストデータを短く書く
type Reaction = domain.Reaction

func TestReconciler_Decide_既存リアクションの同期(t *testing.T) {
	tests := []struct {
		name        string
		actorID     string
		filter      *domain.ReactionFilter
		message     *domain.Message
		wantActions []AddAction
		wantAlready int
		wantBlocked int
	}{
		{
			name:    "他人のリアクションを1つ同期",
			actorID: "UME",
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
				Reactions: []Reaction{
					{Name: "rocket", Users: []string{"U001"}},
				},
			},
			wantActions: []AddAction{
				{ChannelID: "C001", Timestamp: "1700000000.000100", Emoji: "rocket"},
			},
		},
		{
			name:    "スキントーン付きは基本名で追加",
			actorID: "UME",
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
				Reactions: []Reaction{
					{Name: "raised_hands::skin-tone-3", Users: []string{"U001"}},
				},
			},
			wantActions: []AddAction{
				{ChannelID: "C001", Timestamp: "1700000000.000100", Emoji: "raised_hands"},
			},
		},
		{
			name:    "基本名が同じスキントーン違いは1つにまとめる",
			actorID: "UME",
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
				Reactions: []Reaction{
					{Name: "raised_hands::skin-tone-2", Users: []string{"U001"}},
					{Name: "raised_hands::skin-tone-5", Users: []string{"U002"}},
				},
			},
			wantActions: []AddAction{
				{ChannelID: "C001", Timestamp: "1700000000.000100", Emoji: "raised_hands"},
			},
		},
		{
			name:    "既に基本名で付けている場合は追加しない",
			actorID: "UME",
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
				Reactions: []Reaction{
					{Name: "rocket", Users: []string{"U001", "UME"}},
				},
			},
			wantAlready: 1,
		},
		{
			name:    "スキントーン違いで付けていても二重追加しない",
			actorID: "UME",
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
				Reactions: []Reaction{
					{Name: "thumbsup", Users: []string{"U001"}},
					{Name: "thumbsup::skin-tone-4", Users: []string{"UME"}},
				},
			},
			wantAlready: 1,
		},
		{
			name:    "ブロックリスト対象は追加しない",
			actorID: "UME",
			filter:  domain.NewReactionFilter([]string{"middle_finger"}, nil, nil),
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
				Reactions: []Reaction{
					{Name: "middle_finger", Users: []string{"U001"}},
					{Name: "rocket", Users: []string{"U001"}},
				},
			},
			wantActions: []AddAction{
				{ChannelID: "C001", Timestamp: "1700000000.000100", Emoji: "rocket"},
			},
			wantBlocked: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter
			if filter == nil {
				filter = domain.NewReactionFilter(nil, nil, nil)
			}
			r := NewReconciler(tt.actorID, newTestSkipConfig("U123", nil), filter, Options{})
			d := r.Decide(tt.message)

			if diff := cmp.Diff(tt.wantActions, d.Actions); diff != "" {
				t.Errorf("Actions の差分 (-want +got):\n%s", diff)
			}
			if d.AlreadyReacted != tt.wantAlready {
				t.Errorf("AlreadyReacted = %d, want %d", d.AlreadyReacted, tt.wantAlready)
			}
			if d.Blocked != tt.wantBlocked {
				t.Errorf("Blocked = %d, want %d", d.Blocked, tt.wantBlocked)
			}
		})
	}
}

func TestReconciler_Decide_デフォルトリアクション(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		filter      *domain.ReactionFilter
		message     *domain.Message
		wantEmojis  []string
		wantBlocked int
	}{
		{
			name: "リアクションなしのメッセージに設定したデフォルトを付ける",
			opts: Options{AddDefaults: true, DefaultReactions: []string{"rocket", "v"}},
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
			},
			wantEmojis: []string{"rocket", "v"},
		},
		{
			name:   "ブロックリスト対象のデフォルトは除く",
			opts:   Options{AddDefaults: true, DefaultReactions: []string{"rocket", "v"}},
			filter: domain.NewReactionFilter([]string{"v"}, nil, nil),
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
			},
			wantEmojis:  []string{"rocket"},
			wantBlocked: 1,
		},
		{
			name: "リスト未設定の場合は組み込みの既定値",
			opts: Options{AddDefaults: true},
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
			},
			wantEmojis: []string{"thumbsup", "raised_hands", "rocket", "eyes"},
		},
		{
			name: "重複するデフォルトは1回だけ",
			opts: Options{AddDefaults: true, DefaultReactions: []string{"rocket", "rocket", "eyes"}},
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
			},
			wantEmojis: []string{"rocket", "eyes"},
		},
		{
			name: "既存リアクションがある場合はデフォルトを付けない",
			opts: Options{AddDefaults: true, DefaultReactions: []string{"v"}},
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
				Reactions: []Reaction{
					{Name: "rocket", Users: []string{"U001"}},
				},
			},
			wantEmojis: []string{"rocket"},
		},
		{
			name: "モード無効の場合は何もしない",
			opts: Options{AddDefaults: false},
			message: &domain.Message{
				ChannelID: "C001",
				Timestamp: "1700000000.000100",
				UserID:    "U001",
			},
			wantEmojis: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := tt.filter
			if filter == nil {
				filter = domain.NewReactionFilter(nil, nil, nil)
			}
			r := NewReconciler("UME", newTestSkipConfig("U123", nil), filter, tt.opts)
			d := r.Decide(tt.message)

			var gotEmojis []string
			for _, a := range d.Actions {
				gotEmojis = append(gotEmojis, a.Emoji)
			}
			if diff := cmp.Diff(tt.wantEmojis, gotEmojis); diff != "" {
				t.Errorf("追加絵文字の差分 (-want +got):\n%s", diff)
			}
			if d.Blocked != tt.wantBlocked {
				t.Errorf("Blocked = %d, want %d", d.Blocked, tt.wantBlocked)
			}
		})
	}
}

func TestReconciler_Decide_本人投稿にはデフォルトも付けない(t *testing.T) {
	r := NewReconciler("U123", newTestSkipConfig("U123", nil), domain.NewReactionFilter(nil, nil, nil),
		Options{AddDefaults: true})

	d := r.Decide(&domain.Message{
		ChannelID: "C001",
		Timestamp: "1700000000.000100",
		UserID:    "U123",
	})

	if d.SkipReason != domain.SkipAuthor {
		t.Errorf("SkipReason = %q, want %q", d.SkipReason, domain.SkipAuthor)
	}
	if len(d.Actions) != 0 {
		t.Errorf("Actions = %v, want 空", d.Actions)
	}
}
