package service

import (
	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// DefaultReactionNames はデフォルトリアクションの組み込みの既定値
var DefaultReactionNames = []string{"thumbsup", "raised_hands", "rocket", "eyes"}

// Options はリアクション判定の動作モード
type Options struct {
	DryRun           bool
	AddDefaults      bool     // リアクションが1つもないメッセージにデフォルトを付ける
	DefaultReactions []string // デフォルトリアクションの上書き（空なら組み込みの既定値）
}

// AddAction は実行すべきリアクション追加を表す
// Emoji は常に基本絵文字名（スキントーンなし）
type AddAction struct {
	ChannelID string
	Timestamp string
	Emoji     string
}

// Decision は1メッセージ分の判定結果
type Decision struct {
	Actions        []AddAction
	SkipReason     domain.SkipReason
	AlreadyReacted int // 既に付けていたためスキップした基本絵文字数
	Blocked        int // ブロックリストでスキップした基本絵文字数
}

// Reconciler はメッセージとそのリアクションから追加すべきリアクションを判定するサービス
// 外部サービスへの副作用は一切持たない
type Reconciler struct {
	actorID string // リアクションを付けるアカウント
	skip    *domain.SkipConfig
	filter  *domain.ReactionFilter
	opts    Options
}

// NewReconciler は新しいReconcilerサービスを作成する
func NewReconciler(actorID string, skip *domain.SkipConfig, filter *domain.ReactionFilter, opts Options) *Reconciler {
	return &Reconciler{
		actorID: actorID,
		skip:    skip,
		filter:  filter,
		opts:    opts,
	}
}

// Decide はメッセージに対して追加すべきリアクションを判定する
// スキップ判定は以下の順に適用する:
//  1. 投稿者が対象ユーザー本人、または実行アカウント自身
//  2. スタンドアップ通知
//  3. ワークフローの "from:" 帰属
//  4. 設定されたスキップ文字列・正規表現
//
// 対象ユーザーを上書きした構成では投稿者と実行アカウントが別人になるため、
// 自分の投稿に自分でリアクションしないよう両方を照合する
func (r *Reconciler) Decide(msg *domain.Message) Decision {
	if r.skip.MatchesAuthor(msg.UserID) || msg.UserID == r.actorID {
		return Decision{SkipReason: domain.SkipAuthor}
	}

	texts := msg.AllTexts()
	if domain.ContainsStandupReminder(texts) {
		return Decision{SkipReason: domain.SkipStandupReminder}
	}
	if r.skip.MatchesWorkflowFrom(texts) {
		return Decision{SkipReason: domain.SkipWorkflowFrom}
	}
	if r.skip.MatchesContent(texts) {
		return Decision{SkipReason: domain.SkipContentMatch}
	}

	if msg.HasReactions() {
		return r.mirrorExisting(msg)
	}
	if r.opts.AddDefaults {
		return r.addDefaults(msg)
	}
	return Decision{}
}

// mirrorExisting は既存リアクションの基本絵文字名ごとに追加アクションを組み立てる
func (r *Reconciler) mirrorExisting(msg *domain.Message) Decision {
	var d Decision
	seen := make(map[string]struct{}, len(msg.Reactions))

	for i := range msg.Reactions {
		name := msg.Reactions[i].CanonicalName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if msg.HasReactionBy(r.actorID, name) {
			d.AlreadyReacted++
			continue
		}
		if r.filter.Blocked(name) {
			d.Blocked++
			continue
		}
		d.Actions = append(d.Actions, AddAction{
			ChannelID: msg.ChannelID,
			Timestamp: msg.Timestamp,
			Emoji:     name,
		})
	}

	return d
}

// addDefaults はリアクションのないメッセージにデフォルトリアクションの追加を組み立てる
func (r *Reconciler) addDefaults(msg *domain.Message) Decision {
	var d Decision
	names := r.opts.DefaultReactions
	if len(names) == 0 {
		names = DefaultReactionNames
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if r.filter.Blocked(name) {
			d.Blocked++
			continue
		}
		d.Actions = append(d.Actions, AddAction{
			ChannelID: msg.ChannelID,
			Timestamp: msg.Timestamp,
			Emoji:     name,
		})
	}

	return d
}
