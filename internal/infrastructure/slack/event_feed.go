package slack

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// EventFeed はSocket Modeで reaction_added イベントを受信するイベントフィード
// イベントは到着ごとに即座にACKし（トランスポートの要件）、処理結果とは無関係に応答する
type EventFeed struct {
	client *socketmode.Client
	logger zerolog.Logger
}

// NewEventFeed は新しいEventFeedを作成する
func NewEventFeed(client *socketmode.Client, logger zerolog.Logger) *EventFeed {
	return &EventFeed{
		client: client,
		logger: logger,
	}
}

// Run は接続を確立してイベントを処理し続ける（プロセス終了まで戻らない）
// ハンドラのエラーはログに記録してそのイベントだけを捨て、ループは継続する
func (f *EventFeed) Run(ctx context.Context, handle func(ctx context.Context, ev domain.ReactionEvent) error) error {
	go f.consume(ctx, handle)
	return f.client.RunContext(ctx)
}

// consume はイベントチャネルを単一のゴルーチンで順次処理する
// コールバックが並行実行されないため、同一メッセージへの二重判定は起きない
func (f *EventFeed) consume(ctx context.Context, handle func(ctx context.Context, ev domain.ReactionEvent) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-f.client.Events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				f.logger.Info().Msg("Socket Modeで接続中...")
			case socketmode.EventTypeConnected:
				f.logger.Info().Msg("Socket Modeで接続しました")
			case socketmode.EventTypeConnectionError:
				f.logger.Warn().Msg("接続エラーが発生しました。再接続します")
			case socketmode.EventTypeEventsAPI:
				f.handleEventsAPI(ctx, evt, handle)
			}
		}
	}
}

// handleEventsAPI はEvents APIのエンベロープを処理する
func (f *EventFeed) handleEventsAPI(ctx context.Context, evt socketmode.Event, handle func(ctx context.Context, ev domain.ReactionEvent) error) {
	apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
	if !ok {
		return
	}
	// 処理結果を待たずに先にACKする
	if evt.Request != nil {
		f.client.Ack(*evt.Request)
	}

	if apiEvent.Type != slackevents.CallbackEvent {
		return
	}
	reaction, ok := apiEvent.InnerEvent.Data.(*slackevents.ReactionAddedEvent)
	if !ok {
		return
	}
	if reaction.Item.Type != "message" {
		return
	}

	ev := domain.ReactionEvent{
		ChannelID:  reaction.Item.Channel,
		Timestamp:  reaction.Item.Timestamp,
		Emoji:      reaction.Reaction,
		UserID:     reaction.User,
		ItemUserID: reaction.ItemUser,
	}
	if err := handle(ctx, ev); err != nil {
		// このイベントだけを捨てて受信を継続する
		f.logger.Error().
			Err(err).
			Str("channel", ev.ChannelID).
			Str("ts", ev.Timestamp).
			Str("emoji", ev.Emoji).
			Msg("イベントの処理に失敗しました")
	}
}
