package routes_test

import (
	"net/http"
	"testing"

	"github.com/vollnycoelho/yogaa/models"
)

func TestBookingLifecycle(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := login(t, s, "user", "user123")

	hatha := findSession(t, s, "Morning Hatha Yoga")
	before := hatha.CurrentParticipants

	w := doReq(s, http.MethodPost, "/api/bookings",
		`{"sessionId":"`+hatha.ID+`","sessionDate":"2026-09-01 10:00"}`, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("create booking: code=%d body=%s", w.Code, w.Body.String())
	}
	booking := decode[models.Booking](t, w)
	if booking.Status != "confirmed" || booking.SessionID != hatha.ID {
		t.Fatalf("booking = %+v", booking)
	}

	if got := findSession(t, s, "Morning Hatha Yoga"); got.CurrentParticipants != before+1 {
		t.Fatalf("participants after booking = %d, want %d", got.CurrentParticipants, before+1)
	}

	w = doReq(s, http.MethodGet, "/api/bookings", "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("list bookings: code=%d", w.Code)
	}
	if mine := decode[[]models.Booking](t, w); len(mine) != 1 || mine[0].ID != booking.ID {
		t.Fatalf("own bookings = %+v", mine)
	}

	w = doReq(s, http.MethodDelete, "/api/bookings/"+booking.ID, "", cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel booking: code=%d body=%s", w.Code, w.Body.String())
	}
	if got := findSession(t, s, "Morning Hatha Yoga"); got.CurrentParticipants != before {
		t.Fatalf("participants after cancel = %d, want %d", got.CurrentParticipants, before)
	}

	w = doReq(s, http.MethodGet, "/api/bookings", "", cookies)
	if mine := decode[[]models.Booking](t, w); len(mine) != 0 {
		t.Fatalf("bookings after cancel = %+v", mine)
	}

	// the row is gone, not soft-cancelled
	if w := doReq(s, http.MethodDelete, "/api/bookings/"+booking.ID, "", cookies); w.Code != http.StatusNotFound {
		t.Fatalf("cancel again: code=%d", w.Code)
	}
}

func TestBookingFullSession(t *testing.T) {
	s, _ := newTestServer(t)
	admin := login(t, s, "admin", "admin123")
	user := login(t, s, "user", "user123")

	w := doReq(s, http.MethodPost, "/api/sessions",
		`{"title":"Tiny","description":"d","instructor":"i","category":"Hatha","level":"Beginner",
		  "duration":30,"maxParticipants":1,"price":100,"schedule":"daily"}`, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("create session: code=%d body=%s", w.Code, w.Body.String())
	}
	tiny := decode[models.Session](t, w)

	w = doReq(s, http.MethodPost, "/api/bookings",
		`{"sessionId":"`+tiny.ID+`","sessionDate":"d"}`, user)
	if w.Code != http.StatusOK {
		t.Fatalf("first booking: code=%d body=%s", w.Code, w.Body.String())
	}

	w = doReq(s, http.MethodPost, "/api/bookings",
		`{"sessionId":"`+tiny.ID+`","sessionDate":"d"}`, user)
	if w.Code != http.StatusConflict {
		t.Fatalf("overbooking: code=%d body=%s", w.Code, w.Body.String())
	}
	if got := findSession(t, s, "Tiny"); got.CurrentParticipants != 1 {
		t.Fatalf("participants = %d, want 1", got.CurrentParticipants)
	}
}

func TestBookingUnknownSession(t *testing.T) {
	s, _ := newTestServer(t)
	cookies := login(t, s, "user", "user123")

	w := doReq(s, http.MethodPost, "/api/bookings",
		`{"sessionId":"no-such-session","sessionDate":"d"}`, cookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown session: code=%d body=%s", w.Code, w.Body.String())
	}

	// no orphan booking was written
	w = doReq(s, http.MethodGet, "/api/bookings", "", cookies)
	if mine := decode[[]models.Booking](t, w); len(mine) != 0 {
		t.Fatalf("orphan bookings = %+v", mine)
	}
}

func TestBookingsVisibility(t *testing.T) {
	s, _ := newTestServer(t)
	admin := login(t, s, "admin", "admin123")
	user := login(t, s, "user", "user123")

	hatha := findSession(t, s, "Morning Hatha Yoga")
	for _, cookies := range [][]*http.Cookie{user, admin} {
		w := doReq(s, http.MethodPost, "/api/bookings",
			`{"sessionId":"`+hatha.ID+`","sessionDate":"d"}`, cookies)
		if w.Code != http.StatusOK {
			t.Fatalf("booking: code=%d body=%s", w.Code, w.Body.String())
		}
	}

	w := doReq(s, http.MethodGet, "/api/bookings", "", admin)
	if all := decode[[]models.Booking](t, w); len(all) != 2 {
		t.Fatalf("admin sees %d bookings, want 2", len(all))
	}

	w = doReq(s, http.MethodGet, "/api/bookings", "", user)
	mine := decode[[]models.Booking](t, w)
	if len(mine) != 1 {
		t.Fatalf("user sees %d bookings, want 1", len(mine))
	}

	if w := doReq(s, http.MethodGet, "/api/bookings", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous bookings: code=%d", w.Code)
	}
}

func TestDeleteBookingAuthorization(t *testing.T) {
	s, _ := newTestServer(t)
	owner := login(t, s, "user", "user123")

	w := doReq(s, http.MethodPost, "/api/auth/register",
		`{"username":"intruder","password":"p","email":"intruder@yoga.com"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register intruder: code=%d", w.Code)
	}
	intruder := w.Result().Cookies()

	hatha := findSession(t, s, "Morning Hatha Yoga")
	w = doReq(s, http.MethodPost, "/api/bookings",
		`{"sessionId":"`+hatha.ID+`","sessionDate":"d"}`, owner)
	booking := decode[models.Booking](t, w)

	if w := doReq(s, http.MethodDelete, "/api/bookings/"+booking.ID, "", intruder); w.Code != http.StatusForbidden {
		t.Fatalf("intruder delete: code=%d", w.Code)
	}

	// admins may cancel anyone's booking
	admin := login(t, s, "admin", "admin123")
	if w := doReq(s, http.MethodDelete, "/api/bookings/"+booking.ID, "", admin); w.Code != http.StatusOK {
		t.Fatalf("admin delete: code=%d body=%s", w.Code, w.Body.String())
	}
}
