// Package handler はpagesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"member_portal/internal/platform/view"
)

// PagesHandler は認証不要の静的ページを処理します。
type PagesHandler struct{}

// NewPagesHandler はPagesHandlerの新しいインスタンスを生成します。
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Index はトップページを表示します。
func (h *PagesHandler) Index(c *gin.Context) {
	view.HTML(c, http.StatusOK, "index.html", nil)
}

// About は「このサイトについて」ページを表示します。
func (h *PagesHandler) About(c *gin.Context) {
	view.HTML(c, http.StatusOK, "about.html", nil)
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	// すべてのGET/HEAD/OPTIONSリクエストに対して200または204を返す
	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
