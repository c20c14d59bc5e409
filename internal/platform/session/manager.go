// Package session はセッションへのユーザーIDの紐付け・解除と認証ガードを提供します。
package session

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"member_portal/internal/feature/accounts/domain/entity"
	"member_portal/internal/feature/accounts/usecase"
)

const (
	// CookieName はセッションクッキーの名前です。
	CookieName = "portal_session"

	// sessionKeyUserID はセッションに保存するユーザーIDのキーです。
	sessionKeyUserID = "user_id"

	// contextUserKey はリクエストコンテキストで解決済みユーザーを共有するキーです。
	contextUserKey = "session.user"

	// LoginPath は未認証のリクエストのリダイレクト先です。
	LoginPath = "/login"
)

// rememberMaxAge は「ログイン状態を保持する」が選択された場合のクッキー有効期間です。
var rememberMaxAge = int(30 * 24 * time.Hour / time.Second)

// UserFinder はセッションに紐付いたIDからユーザーを復元します。
// Goの慣例に従い、インターフェースはコンシューマー（session）が定義します。
type UserFinder interface {
	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Manager はセッションとユーザーIDの紐付けを管理します。
type Manager struct {
	users UserFinder
}

// NewManager はセッションマネージャーを作成します。
func NewManager(users UserFinder) *Manager {
	return &Manager{users: users}
}

// Login は検証済みユーザーのIDをセッションに紐付けます。
// rememberが真の場合、クッキーの有効期間を延長してブラウザ再起動後も維持します。
func (m *Manager) Login(c *gin.Context, user *entity.User, remember bool) error {
	s := sessions.Default(c)
	s.Set(sessionKeyUserID, user.ID)
	if remember {
		s.Options(sessions.Options{
			Path:     "/",
			MaxAge:   rememberMaxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	if err := s.Save(); err != nil {
		return err
	}
	c.Set(contextUserKey, user)
	return nil
}

// Logout はセッションからユーザーIDの紐付けを解除します。
// 紐付けが存在しない場合も冪等に成功します。
func (m *Manager) Logout(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(sessionKeyUserID)
	return s.Save()
}

// LoadUser はセッションに紐付いたユーザーを毎リクエスト解決するミドルウェアを返します。
// 参照先のユーザーが既に存在しない場合は紐付けを破棄し、匿名として続行します。
func (m *Manager) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		id, ok := s.Get(sessionKeyUserID).(uint)
		if ok {
			user, err := m.users.FindByID(c.Request.Context(), id)
			switch {
			case err == nil:
				c.Set(contextUserKey, user)
			case errors.Is(err, usecase.ErrUserNotFound):
				// 孤立した紐付けは匿名に退化させる
				s.Delete(sessionKeyUserID)
				_ = s.Save()
			}
		}
		c.Next()
	}
}

// RequireAuthenticated は匿名のリクエストを拒否するガードミドルウェアを返します。
// 未認証の場合、元のリクエスト先をnextパラメータとして保持したままログイン画面へ
// リダイレクトします。
func (m *Manager) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		AddFlash(c, FlashWarning, "Please log in to access this page.")
		target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// CurrentUser はLoadUserが解決したログイン中のユーザーを返します。
// 匿名の場合は(nil, false)を返します。
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

// SafeNext はnextリダイレクト先をサイト内の相対パスに制限します。
// オープンリダイレクトを防ぐため、それ以外はルートに落とします。
func SafeNext(next string) string {
	if next != "" && next[0] == '/' && !(len(next) > 1 && next[1] == '/') {
		return next
	}
	return "/"
}
