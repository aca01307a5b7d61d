package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondViewWithETag writes a dashboard view tagged with a hash of its body.
// Views are per session, so caches must key on the cookie. A view showing a
// banner is sent untagged: the banner expires on a clock while the data may
// not change, and a 304 would keep it on screen.
func RespondViewWithETag(ctx *gin.Context, view View) {
	body, err := json.Marshal(view)
	if err != nil || view.Flash != nil {
		ctx.JSON(http.StatusOK, view)
		return
	}

	etag := viewETag(body)
	ctx.Header("ETag", etag)
	ctx.Writer.Header().Add("Vary", "Cookie")

	if ifNoneMatchMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func viewETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func ifNoneMatchMatches(headerValue, currentETag string) bool {
	if strings.TrimSpace(headerValue) == "" || currentETag == "" {
		return false
	}

	if strings.TrimSpace(headerValue) == "*" {
		return true
	}

	for _, part := range strings.Split(headerValue, ",") {
		// weak validators like W/"abc" compare equal to strong ones
		if strings.TrimPrefix(strings.TrimSpace(part), "W/") == currentETag {
			return true
		}
	}

	return false
}
