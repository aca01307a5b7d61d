package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/bankportal/internal/authctx"
	"github.com/geocoder89/bankportal/internal/domain/session"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sessionAs(role session.Role) *session.Session {
	return &session.Session{Token: "t", Role: role, UserID: "1", DisplayName: "n"}
}

func TestDecideRoleRouteMatrix(t *testing.T) {
	routes := map[string][]session.Role{
		"/admin":  AdminRoles,
		"/teller": TellerRoles,
		"/client": ClientRoles,
		"/":       nil,
	}

	allowed := map[string]map[session.Role]bool{
		"/admin":  {session.RoleAdmin: true},
		"/teller": {session.RoleAdmin: true, session.RoleBankTeller: true},
		"/client": {session.RoleAdmin: true, session.RoleBankTeller: true, session.RoleClient: true},
		"/":       {session.RoleAdmin: true, session.RoleBankTeller: true, session.RoleClient: true},
	}

	roles := []session.Role{session.RoleAdmin, session.RoleBankTeller, session.RoleClient, session.Role("AUDITOR")}

	for route, required := range routes {
		if d := Decide(nil, required); d.Allow || d.Redirect != session.PathLogin {
			t.Fatalf("%s: anonymous got %+v", route, d)
		}

		for _, role := range roles {
			d := Decide(sessionAs(role), required)
			want := allowed[route][role]
			if role == "AUDITOR" && route == "/" {
				want = true // any signed-in user may reach the root redirect
			}

			if d.Allow != want {
				t.Fatalf("%s as %s: got allow=%v want %v", route, role, d.Allow, want)
			}
			if !d.Allow && d.Redirect != session.PathLogin {
				t.Fatalf("%s as %s: denial must go to login, got %q", route, role, d.Redirect)
			}
		}
	}
}

type fakeVerifier struct {
	verifyFn func(raw string) (string, error)
}

func (f fakeVerifier) Verify(raw string) (string, error) { return f.verifyFn(raw) }

type fakeHydrator struct {
	calls    int
	hydrated map[string]*session.Session
}

func (f *fakeHydrator) Hydrate(_ context.Context, handle string) *authctx.Scope {
	f.calls++
	return authctx.NewScope(handle, f.hydrated[handle])
}

func newGuardedRouter(h *fakeHydrator, roles ...session.Role) *gin.Engine {
	verifier := fakeVerifier{verifyFn: func(raw string) (string, error) {
		if raw == "forged" {
			return "", errors.New("bad signature")
		}
		return raw, nil
	}}

	r := gin.New()
	r.Use(Session(SessionCookie{Name: "sid"}, verifier, h))
	r.GET("/admin", RequireRoles(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	return r
}

func TestRequireRolesRedirects(t *testing.T) {
	h := &fakeHydrator{hydrated: map[string]*session.Session{
		"admin":  sessionAs(session.RoleAdmin),
		"client": sessionAs(session.RoleClient),
	}}
	r := newGuardedRouter(h, AdminRoles...)

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no cookie", "", http.StatusSeeOther},
		{"forged cookie", "forged", http.StatusSeeOther},
		{"client on admin", "client", http.StatusSeeOther},
		{"admin on admin", "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sid", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("got %d want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusSeeOther && w.Header().Get("Location") != "/login" {
				t.Fatalf("got location %q", w.Header().Get("Location"))
			}
		})
	}
}

func TestRequireRolesJSONRedirect(t *testing.T) {
	r := newGuardedRouter(&fakeHydrator{}, AdminRoles...)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v body=%s", err, w.Body.String())
	}
	if body.Redirect != "/login" {
		t.Fatalf("got redirect %q", body.Redirect)
	}
}

func TestSessionHydratesOncePerRequest(t *testing.T) {
	h := &fakeHydrator{hydrated: map[string]*session.Session{"admin": sessionAs(session.RoleAdmin)}}
	r := newGuardedRouter(h, AdminRoles...)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "admin"})
	r.ServeHTTP(httptest.NewRecorder(), req)

	if h.calls != 1 {
		t.Fatalf("got %d hydrations, want 1", h.calls)
	}
}
