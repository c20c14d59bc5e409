// Package view は共通コンテキスト付きのHTMLレンダリングを提供します。
package view

import (
	"github.com/gin-gonic/gin"

	"member_portal/internal/platform/session"
)

// HTML はテンプレートをレンダリングします。
// ログイン中のユーザーと未消費のフラッシュ通知を全ページ共通でデータに注入します。
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := session.CurrentUser(c); ok {
		data["User"] = user
	}
	data["Flashes"] = session.TakeFlashes(c)
	c.HTML(status, name, data)
}
