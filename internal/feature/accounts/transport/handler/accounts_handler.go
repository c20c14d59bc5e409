// Package handler はaccountsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"member_portal/internal/feature/accounts/domain/entity"
	"member_portal/internal/feature/accounts/transport/form"
	"member_portal/internal/feature/accounts/usecase"
	"member_portal/internal/platform/session"
	"member_portal/internal/platform/view"
)

// AccountsUsecase はアカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountsUsecase interface {
	// Register は指定されたユーザー名・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	// Authenticate はメールアドレスとパスワードでユーザーを認証します。
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// AccountsHandler は登録・ログイン・ログアウト・プロフィールのHTTPリクエストを処理します。
// AccountsUsecaseインターフェースに依存し、HTMLフォームを処理します。
type AccountsHandler struct {
	accounts AccountsUsecase
	sessions *session.Manager
}

// NewAccountsHandler はAccountsHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewAccountsHandler(accounts AccountsUsecase, sessions *session.Manager) *AccountsHandler {
	return &AccountsHandler{accounts: accounts, sessions: sessions}
}

// ShowRegister は登録フォームを表示します。ログイン済みの場合はトップへ戻します。
func (h *AccountsHandler) ShowRegister(c *gin.Context) {
	if _, ok := session.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	view.HTML(c, http.StatusOK, "register.html", gin.H{"Form": form.RegisterForm{}})
}

// Register は登録フォームの送信を処理します。
// - バリデーション失敗時はフィールド単位のエラー付きでフォームを再表示
// - ユーザー名・メール重複も同じチャネルでフィールドエラーとして表示
// - 成功時は成功通知付きでログイン画面へリダイレクト
func (h *AccountsHandler) Register(c *gin.Context) {
	if _, ok := session.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var f form.RegisterForm
	if err := c.ShouldBind(&f); err != nil {
		view.HTML(c, http.StatusOK, "register.html", gin.H{
			"Form":   f,
			"Errors": form.FieldErrors(err),
		})
		return
	}

	_, err := h.accounts.Register(c.Request.Context(), f.Username, f.Email, f.Password)
	if err != nil {
		fieldErrs := map[string]string{}
		switch {
		case errors.Is(err, usecase.ErrUsernameTaken):
			fieldErrs["username"] = "This name is already taken. Choose another."
		case errors.Is(err, usecase.ErrEmailTaken):
			fieldErrs["email"] = "This email is already registered."
		case errors.Is(err, usecase.ErrPasswordTooShort):
			fieldErrs["password"] = "Password must be at least 6 characters."
		default:
			slog.Error("registration failed", "error", err, "remote_addr", c.ClientIP())
			fieldErrs["form"] = "Registration failed. Please try again."
		}
		view.HTML(c, http.StatusOK, "register.html", gin.H{
			"Form":   f,
			"Errors": fieldErrs,
		})
		return
	}

	slog.Info("user registered", "username", f.Username, "remote_addr", c.ClientIP())
	session.AddFlash(c, session.FlashSuccess, "Registration successful! You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin はログインフォームを表示します。ログイン済みの場合はトップへ戻します。
func (h *AccountsHandler) ShowLogin(c *gin.Context) {
	if _, ok := session.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}
	view.HTML(c, http.StatusOK, "login.html", gin.H{
		"Form": form.LoginForm{},
		"Next": c.Query("next"),
	})
}

// Login はログインフォームの送信を処理します。
// 認証失敗時は原因（メール未登録かパスワード誤りか）を区別しない汎用通知を表示します。
// 成功時はnextパラメータの宛先、なければトップへリダイレクトします。
func (h *AccountsHandler) Login(c *gin.Context) {
	if _, ok := session.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var f form.LoginForm
	if err := c.ShouldBind(&f); err != nil {
		view.HTML(c, http.StatusOK, "login.html", gin.H{
			"Form":   f,
			"Errors": form.FieldErrors(err),
			"Next":   c.Query("next"),
		})
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), f.Email, f.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "email", f.Email, "remote_addr", c.ClientIP())
		session.AddFlash(c, session.FlashError, "Invalid email or password")
		view.HTML(c, http.StatusOK, "login.html", gin.H{
			"Form": f,
			"Next": c.Query("next"),
		})
		return
	}

	if err := h.sessions.Login(c, user, f.RememberMe); err != nil {
		slog.Error("failed to save session", "error", err)
		c.String(http.StatusInternalServerError, "failed to start session")
		return
	}

	slog.Info("user login successful", "email", f.Email, "remote_addr", c.ClientIP())
	session.AddFlash(c, session.FlashSuccess, "You have logged in successfully!")
	c.Redirect(http.StatusFound, session.SafeNext(c.Query("next")))
}

// Logout はセッションの紐付けを解除してトップへリダイレクトします。
func (h *AccountsHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c); err != nil {
		slog.Error("failed to clear session", "error", err)
	}
	session.AddFlash(c, session.FlashInfo, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}

// Profile はログイン中のユーザーのプロフィールを表示します。
// 認証ガードの背後に配置されるため、匿名で到達することはありません。
func (h *AccountsHandler) Profile(c *gin.Context) {
	user, ok := session.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, session.LoginPath)
		return
	}
	view.HTML(c, http.StatusOK, "profile.html", gin.H{"Profile": user})
}
