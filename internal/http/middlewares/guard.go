package middlewares

import (
	"net/http"
	"strings"

	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/gin-gonic/gin"
)

type Decision struct {
	Allow    bool
	Redirect string
}

// Role sets per dashboard.
var (
	AdminRoles  = []session.Role{session.RoleAdmin}
	TellerRoles = []session.Role{session.RoleBankTeller, session.RoleAdmin}
	ClientRoles = []session.Role{session.RoleClient, session.RoleAdmin, session.RoleBankTeller}
)

// Decide is the whole guard policy. An empty required set admits any
// signed-in user. Every denial goes to the login view; there is no
// forbidden page.
func Decide(s *session.Session, required []session.Role) Decision {
	if s == nil {
		return Decision{Redirect: session.PathLogin}
	}

	if len(required) > 0 && !s.HasAnyRole(required...) {
		return Decision{Redirect: session.PathLogin}
	}

	return Decision{Allow: true}
}

// RequireRoles applies Decide to the request's scope.
func RequireRoles(roles ...session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s *session.Session
		if scope := ScopeFrom(c); scope != nil {
			s = scope.Session()
		}

		d := Decide(s, roles)
		if !d.Allow {
			Redirect(c, d.Redirect)
			c.Abort()
			return
		}

		c.Next()
	}
}

// Redirect sends the browser to path. Script clients asking for JSON get
// the target in the body instead of a 303 they would follow blindly.
func Redirect(c *gin.Context, path string) {
	if WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"redirect": path})
		return
	}

	c.Redirect(http.StatusSeeOther, path)
}

func WantsJSON(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), "application/json")
}
