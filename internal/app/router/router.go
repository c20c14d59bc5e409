// Package router はHTTPルーティングとミドルウェアの配線を提供します。
package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	accountshandler "member_portal/internal/feature/accounts/transport/handler"
	pageshandler "member_portal/internal/feature/pages/transport/handler"
	"member_portal/internal/platform/config"
	"member_portal/internal/platform/session"
)

// NewRouter はルート表とミドルウェアを設定したGinエンジンを生成します。
// templatesGlob はHTMLテンプレートの検索パターンです。
func NewRouter(cfg *config.Config, accounts *accountshandler.AccountsHandler,
	pages *pageshandler.PagesHandler, sess *session.Manager, templatesGlob string) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(templatesGlob)

	// セッションクッキーの署名鍵はSESSION_SECRET。
	// デフォルトはブラウザセッション限りのクッキー（MaxAge 0）で、
	// remember me選択時のみセッションマネージャーが有効期間を延長する。
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(session.CookieName, store))

	// セッションに紐付いたユーザーを毎リクエスト復元
	r.Use(sess.LoadUser())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", pageshandler.Health)
	r.GET("/", pages.Index)
	r.GET("/about", pages.About)
	// 新規ユーザー登録
	r.GET("/register", accounts.ShowRegister)
	r.POST("/register", accounts.Register)
	// ログイン（セッション発行）
	r.GET("/login", accounts.ShowLogin)
	r.POST("/login", accounts.Login)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(sess.RequireAuthenticated())
	{
		auth.GET("/logout", accounts.Logout)
		auth.GET("/profile", accounts.Profile)
	}

	return r
}
