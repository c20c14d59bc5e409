// Package usecase はaccountsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"member_portal/internal/feature/accounts/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// ユニーク制約（username, email）に違反する場合、ErrDuplicateKeyを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// accountsUsecase はアカウント登録・認証のビジネスロジックを実装します。
type accountsUsecase struct {
	users UserRepository
}

// NewAccountsUsecase はaccountsUsecaseの新しいインスタンスを生成します。
func NewAccountsUsecase(users UserRepository) *accountsUsecase {
	return &accountsUsecase{users: users}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// ユーザー名・メールアドレスの一意性を事前チェックし、重複時は
// ErrUsernameTaken / ErrEmailTaken を返します。事前チェックと挿入の間の
// 競合はストレージのユニーク制約で検出し、同じエラーにマッピングします。
func (u *accountsUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// 一意性の事前チェック（フィールド単位のエラーを返すため）
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			// 事前チェック後に同じusername/emailが挿入された（競合の敗者）。
			// どちらのフィールドが衝突したかを再照会して判定する。
			if _, probeErr := u.users.FindByUsername(ctx, username); probeErr == nil {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate はメールアドレスとパスワードでユーザーを認証します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// メール未登録とパスワード不一致は区別せず、どちらもErrInvalidCredentialsを返します。
func (u *accountsUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)

	digest := dummyDigest
	if err == nil {
		digest = user.PasswordHash
	}

	// ユーザー未検出でも常にパスワードを検証
	ok := CheckPassword(password, digest)

	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
