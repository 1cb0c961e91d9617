package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/vollnycoelho/yogaa/middlewares"
	"github.com/vollnycoelho/yogaa/models"
	"github.com/vollnycoelho/yogaa/routes"
	"github.com/vollnycoelho/yogaa/utils"
)

/* ---------- helpers ---------- */

func newTestServer(t *testing.T) (*gin.Engine, models.Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := models.NewMemoryStorage()
	auth := middlewares.NewSessionAuth([]byte("test-secret"), store)

	s := gin.New()
	routes.RegisterRoutes(s, store, auth, rdb, utils.NewCacheInvalidator(rdb))
	return s, store
}

func doReq(s *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	s.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, s *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	w := doReq(s, http.MethodPost, "/api/auth/login",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: code=%d body=%s", username, w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	return out
}

func findSession(t *testing.T, s *gin.Engine, title string) models.Session {
	t.Helper()
	w := doReq(s, http.MethodGet, "/api/sessions", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/sessions: %d", w.Code)
	}
	for _, v := range decode[[]models.Session](t, w) {
		if v.Title == title {
			return v
		}
	}
	t.Fatalf("session %q not found", title)
	return models.Session{}
}

/* ---------- auth ---------- */

func TestRegisterLoginMe(t *testing.T) {
	s, _ := newTestServer(t)

	w := doReq(s, http.MethodPost, "/api/auth/register",
		`{"username":"yogi","password":"p455","email":"yogi@yoga.com","fullName":"Yogi Bear"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register: code=%d body=%s", w.Code, w.Body.String())
	}
	created := decode[models.User](t, w)
	if created.Role != "user" {
		t.Fatalf("registered role = %q", created.Role)
	}
	if strings.Contains(w.Body.String(), "p455") {
		t.Fatal("response leaked the password")
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("register did not start a session")
	}

	// registration signs the caller in
	w = doReq(s, http.MethodGet, "/api/auth/me", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("me: code=%d body=%s", w.Code, w.Body.String())
	}
	me := decode[models.User](t, w)
	if me.Username != "yogi" || me.ID != created.ID {
		t.Fatalf("me = %+v", me)
	}

	// duplicate username: 400 and no session
	w = doReq(s, http.MethodPost, "/api/auth/register",
		`{"username":"yogi","password":"x","email":"other@yoga.com"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: code=%d", w.Code)
	}

	// a taken email trips the same unique constraint, with a message that
	// does not claim the username is the culprit
	w = doReq(s, http.MethodPost, "/api/auth/register",
		`{"username":"other","password":"x","email":"yogi@yoga.com"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email register: code=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already in use") {
		t.Fatalf("duplicate email body = %s", w.Body.String())
	}

	// fresh login works, wrong password does not
	login(t, s, "yogi", "p455")
	w = doReq(s, http.MethodPost, "/api/auth/login", `{"username":"yogi","password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: code=%d", w.Code)
	}
}

func TestMeRequiresSession(t *testing.T) {
	s, _ := newTestServer(t)
	if w := doReq(s, http.MethodGet, "/api/auth/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me without session: code=%d", w.Code)
	}
}

func TestLogout(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := login(t, s, "user", "user123")

	w := doReq(s, http.MethodPost, "/api/auth/logout", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: code=%d", w.Code)
	}

	// a client that keeps the logout response cookie must not stay signed
	// in; expiry alone is client-side only, the cookie itself has to lose
	// the identity
	if w := doReq(s, http.MethodGet, "/api/auth/me", "", w.Result().Cookies()); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: code=%d body=%s", w.Code, w.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	s, store := newTestServer(t)

	w := doReq(s, http.MethodPost, "/api/auth/register", `{"username":"only"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: code=%d", w.Code)
	}
	w = doReq(s, http.MethodPost, "/api/auth/register",
		`{"username":"only","password":"p","email":"not-an-email"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad email: code=%d", w.Code)
	}
	if _, ok, _ := store.GetUserByUsername(t.Context(), "only"); ok {
		t.Fatal("invalid registration created a user")
	}
}
