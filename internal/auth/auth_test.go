package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(secret string) (*gin.Engine, *Claims) {
	gin.SetMode(gin.TestMode)
	seen := &Claims{}

	r := gin.New()
	r.GET("/", GuestMiddleware(secret), func(c *gin.Context) {
		claims, err := FromContext(c)
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		*seen = claims
		c.Status(http.StatusOK)
	})
	return r, seen
}

func TestMintsGuestIdentity(t *testing.T) {
	r, seen := newRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if seen.ID == "" || seen.Username == "" {
		t.Fatalf("middleware set empty claims: %+v", seen)
	}
	if len(w.Result().Cookies()) == 0 {
		t.Fatal("no guest cookie issued")
	}
}

func TestKeepsIdentityAcrossRequests(t *testing.T) {
	r, seen := newRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	first := *seen

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	if seen.ID != first.ID || seen.Username != first.Username {
		t.Errorf("identity changed across requests: %+v -> %+v", first, seen)
	}
	if len(w2.Result().Cookies()) != 0 {
		t.Error("valid cookie was reissued")
	}
}

func TestRejectsTamperedToken(t *testing.T) {
	r, _ := newRouter("test-secret")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	// A token signed with a different secret must not be trusted.
	other, _ := newRouter("other-secret")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	other.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("status = %d", w2.Code)
	}
	if len(w2.Result().Cookies()) == 0 {
		t.Error("tampered token was accepted without reissue")
	}
}
