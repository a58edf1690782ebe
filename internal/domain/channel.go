package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Channel はSlackチャンネルを表すドメインモデル
type Channel struct {
	ID   string
	Name string
}

// TimeRange は走査対象の時間範囲を表す値オブジェクト
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange は oldest / latest の文字列から時間範囲を作成する
// 空文字列は無制限を意味する
func NewTimeRange(oldest, latest string) (*TimeRange, error) {
	tr := &TimeRange{}

	if oldest != "" {
		t, err := ParseTimeBound(oldest)
		if err != nil {
			return nil, fmt.Errorf("開始日時の形式が無効です: %w", err)
		}
		tr.Start = t
	}
	if latest != "" {
		t, err := ParseTimeBound(latest)
		if err != nil {
			return nil, fmt.Errorf("終了日時の形式が無効です: %w", err)
		}
		tr.End = t
	}
	if !tr.IsValid() {
		return nil, fmt.Errorf("時間範囲が無効です: 開始 %s が終了 %s より後です", oldest, latest)
	}

	return tr, nil
}

// ParseTimeBound は日時文字列を解釈する
// YYYY-MM-DD 形式はUTCの0時、数値はUNIX秒（小数部許容）として扱う
func ParseTimeBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}

	// Slackタイムスタンプ形式 "1504840306.000009" の小数部は切り捨てる
	sec := s
	if i := strings.Index(sec, "."); i >= 0 {
		sec = sec[:i]
	}
	if n, err := strconv.ParseInt(sec, 10, 64); err == nil {
		return time.Unix(n, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("無効な日時: %s", s)
}

// IsValid は時間範囲が有効かどうかを検証する
func (tr *TimeRange) IsValid() bool {
	return tr.Start.IsZero() || tr.End.IsZero() || tr.Start.Before(tr.End) || tr.Start.Equal(tr.End)
}

// Contains は指定された時刻が時間範囲内かどうかを返す
func (tr *TimeRange) Contains(t time.Time) bool {
	if !tr.Start.IsZero() && t.Before(tr.Start) {
		return false
	}
	if !tr.End.IsZero() && t.After(tr.End) {
		return false
	}
	return true
}

// Oldest はAPIに渡す開始タイムスタンプ文字列を返す（無制限の場合は空文字列）
func (tr *TimeRange) Oldest() string {
	if tr == nil || tr.Start.IsZero() {
		return ""
	}
	return strconv.FormatInt(tr.Start.Unix(), 10)
}

// Latest はAPIに渡す終了タイムスタンプ文字列を返す（無制限の場合は空文字列）
func (tr *TimeRange) Latest() string {
	if tr == nil || tr.End.IsZero() {
		return ""
	}
	return strconv.FormatInt(tr.End.Unix(), 10)
}
