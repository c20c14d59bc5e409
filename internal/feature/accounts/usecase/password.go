package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 6
)

// dummyDigest はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証します。
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword は平文パスワードをbcryptダイジェストに変換します。
// ソルトはダイジェストに埋め込まれるため、同じ入力でも毎回異なる値を返します。
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword は平文パスワードを保存済みダイジェストと照合します。
// bcryptの比較は一致位置に依存しない時間で実行されます。
// ダイジェストが不正な形式の場合もpanicせずfalseを返します。
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooShort, minPasswordLength)
	}
	return nil
}
