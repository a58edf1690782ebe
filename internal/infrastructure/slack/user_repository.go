package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/Tattsum/slack-reaction-mirror/internal/domain"
)

// UserRepository はSlack APIを使用してユーザー情報を取得するリポジトリ
type UserRepository struct {
	client *slack.Client
}

// NewUserRepository は新しいUserRepositoryを作成する
func NewUserRepository(client *slack.Client) *UserRepository {
	return &UserRepository{
		client: client,
	}
}

// FindByID は指定されたIDのユーザーを取得する
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	info, err := withRetry(ctx, func() (*slack.User, error) {
		return r.client.GetUserInfoContext(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("ユーザー情報取得エラー (user=%s): %w", userID, err)
	}

	return &domain.User{
		ID:          info.ID,
		Name:        info.Name,
		DisplayName: info.Profile.DisplayName,
		RealName:    info.RealName,
	}, nil
}

// Identity は認証済みアカウント自身のユーザー情報を取得する
func (r *UserRepository) Identity(ctx context.Context) (*domain.User, error) {
	resp, err := withRetry(ctx, func() (*slack.AuthTestResponse, error) {
		return r.client.AuthTestContext(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("認証情報の確認に失敗しました: %w", err)
	}

	// auth.testはIDと名前しか返さないため、プロフィールはFindByIDで補完する
	user, err := r.FindByID(ctx, resp.UserID)
	if err != nil {
		return &domain.User{ID: resp.UserID, Name: resp.User}, nil
	}
	return user, nil
}
