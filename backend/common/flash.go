package common

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash categories map to bootstrap alert classes in the templates.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-shot status message stored in the session until the next
// rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

func AddFlash(c *gin.Context, category string, message string) {
	session := sessions.Default(c)
	session.AddFlash(Flash{Category: category, Message: message})
	if err := session.Save(); err != nil {
		SysError("failed to save flash: " + err.Error())
	}
}

// PopFlashes returns and clears the pending flashes.
func PopFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		SysError("failed to clear flashes: " + err.Error())
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// FlashRedirect records a flash and redirects with 302, the web handlers'
// answer to every POST.
func FlashRedirect(c *gin.Context, category string, message string, location string) {
	AddFlash(c, category, message)
	c.Redirect(302, location)
}
