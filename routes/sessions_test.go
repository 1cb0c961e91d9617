package routes_test

import (
	"net/http"
	"testing"

	"github.com/vollnycoelho/yogaa/models"
)

func TestSessionRoutesRequireAdmin(t *testing.T) {
	s, store := newTestServer(t)
	user := login(t, s, "user", "user123")

	body := `{"title":"Sneaky","description":"d","instructor":"i","category":"c","level":"l",
		"duration":30,"maxParticipants":5,"price":100,"schedule":"daily"}`

	if w := doReq(s, http.MethodPost, "/api/sessions", body, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create: code=%d", w.Code)
	}
	if w := doReq(s, http.MethodPost, "/api/sessions", body, user); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin create: code=%d", w.Code)
	}

	sessions, _ := store.ListSessions(t.Context())
	for _, v := range sessions {
		if v.Title == "Sneaky" {
			t.Fatal("session created despite missing role")
		}
	}
}

func TestSessionAdminCRUD(t *testing.T) {
	s, _ := newTestServer(t)
	admin := login(t, s, "admin", "admin123")

	w := doReq(s, http.MethodPost, "/api/sessions",
		`{"title":"Yin Yoga","description":"slow and deep","instructor":"Ana","category":"Yin",
		  "level":"Beginner","duration":75,"maxParticipants":10,"price":700,"schedule":"Sun - 9:00 AM"}`, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("create: code=%d body=%s", w.Code, w.Body.String())
	}
	created := decode[models.Session](t, w)
	if created.ID == "" || created.CurrentParticipants != 0 {
		t.Fatalf("created = %+v", created)
	}

	// partial update touches only the named fields
	w = doReq(s, http.MethodPatch, "/api/sessions/"+created.ID, `{"price":750}`, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("patch: code=%d body=%s", w.Code, w.Body.String())
	}
	patched := decode[models.Session](t, w)
	if patched.Price != 750 || patched.Title != "Yin Yoga" || patched.Duration != 75 {
		t.Fatalf("patched = %+v", patched)
	}

	if w := doReq(s, http.MethodPatch, "/api/sessions/no-such-id", `{"price":1}`, admin); w.Code != http.StatusNotFound {
		t.Fatalf("patch missing: code=%d", w.Code)
	}

	if w := doReq(s, http.MethodDelete, "/api/sessions/"+created.ID, "", admin); w.Code != http.StatusOK {
		t.Fatalf("delete: code=%d", w.Code)
	}
	if w := doReq(s, http.MethodGet, "/api/sessions/"+created.ID, "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("get deleted: code=%d", w.Code)
	}
	if w := doReq(s, http.MethodDelete, "/api/sessions/"+created.ID, "", admin); w.Code != http.StatusNotFound {
		t.Fatalf("delete missing: code=%d", w.Code)
	}
}

func TestDeleteSessionCascadesOverAPI(t *testing.T) {
	s, _ := newTestServer(t)
	admin := login(t, s, "admin", "admin123")
	user := login(t, s, "user", "user123")

	hatha := findSession(t, s, "Morning Hatha Yoga")
	w := doReq(s, http.MethodPost, "/api/bookings",
		`{"sessionId":"`+hatha.ID+`","sessionDate":"d"}`, user)
	if w.Code != http.StatusOK {
		t.Fatalf("booking: code=%d", w.Code)
	}

	if w := doReq(s, http.MethodDelete, "/api/sessions/"+hatha.ID, "", admin); w.Code != http.StatusOK {
		t.Fatalf("delete session: code=%d", w.Code)
	}

	w = doReq(s, http.MethodGet, "/api/bookings", "", user)
	if mine := decode[[]models.Booking](t, w); len(mine) != 0 {
		t.Fatalf("bookings survived session delete: %+v", mine)
	}
}

func TestSessionValidation(t *testing.T) {
	s, _ := newTestServer(t)
	admin := login(t, s, "admin", "admin123")

	// zero capacity fails binding
	w := doReq(s, http.MethodPost, "/api/sessions",
		`{"title":"Bad","description":"d","instructor":"i","category":"c","level":"l",
		  "duration":30,"maxParticipants":0,"price":100,"schedule":"daily"}`, admin)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("zero capacity: code=%d", w.Code)
	}
}
