package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/vollnycoelho/yogaa/models"
)

const (
	sessionName = "yoga_session"
	userIDKey   = "userId"
)

// SessionAuth carries the signed-cookie session store and the user lookup the
// role checks need. Authorization lives here and in the handlers, never in
// the storage layer.
type SessionAuth struct {
	store *sessions.CookieStore
	users models.UserStore
}

func NewSessionAuth(secret []byte, users models.UserStore) *SessionAuth {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionAuth{store: store, users: users}
}

// SignIn stores the user id in a fresh session cookie.
func (a *SessionAuth) SignIn(c *gin.Context, userID string) error {
	sess, _ := a.store.Get(c.Request, sessionName)
	sess.Values[userIDKey] = userID
	return sess.Save(c.Request, c.Writer)
}

// SignOut clears the identity and expires the session cookie. Expiring alone
// is not enough: Save re-encodes Values into the response cookie, and a client
// that keeps the cookie would still decode to a logged-in user.
func (a *SessionAuth) SignOut(c *gin.Context) error {
	sess, _ := a.store.Get(c.Request, sessionName)
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request, c.Writer)
}

// CurrentUserID reads the caller's id from the session cookie.
func (a *SessionAuth) CurrentUserID(c *gin.Context) (string, bool) {
	sess, err := a.store.Get(c.Request, sessionName)
	if err != nil {
		return "", false
	}
	id, ok := sess.Values[userIDKey].(string)
	return id, ok && id != ""
}

// Authenticate aborts with 401 unless the request carries a valid session
// cookie, and puts the user id into the Gin context for handlers.
func (a *SessionAuth) Authenticate(c *gin.Context) {
	id, ok := a.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.Set(userIDKey, id)
	c.Next()
}

// RequireAdmin runs after Authenticate and aborts with 403 unless the caller
// is an admin.
func (a *SessionAuth) RequireAdmin(c *gin.Context) {
	user, ok, err := a.users.GetUser(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if user.Role != "admin" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}
