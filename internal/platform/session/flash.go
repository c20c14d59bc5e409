package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash categories, rendered as styling hints by the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
	FlashWarning = "warning"
)

// Flash is a one-shot notice carried across a redirect in the session cookie.
type Flash struct {
	Category string
	Message  string
}

func init() {
	// クッキーストアはgobでエンコードするため、フラッシュ型の登録が必要
	gob.Register(Flash{})
}

// AddFlash queues a notice for the next rendered page and saves the session.
func AddFlash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: message})
	_ = s.Save()
}

// TakeFlashes drains and returns all queued notices.
// Reading flashes mutates the session, so it saves afterwards.
func TakeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}
