package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollnycoelho/yogaa/models"
)

// GET /api/bookings — admins see every booking, users only their own.
func (d *deps) listBookings(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("userId")

	user, ok, err := d.store.GetUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var bookings []models.Booking
	if user.Role == "admin" {
		bookings, err = d.store.ListBookings(ctx)
	} else {
		bookings, err = d.store.ListBookingsByUser(ctx, userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// POST /api/bookings
//
// The seat is reserved before the booking row is written: the reservation is
// a conditional atomic increment, so a full session can never be overbooked
// and a booking can never point at a session that was missing at creation
// time. If the insert fails the seat is handed back.
func (d *deps) createBooking(c *gin.Context) {
	var in models.NewBooking
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking data"})
		return
	}

	ctx := c.Request.Context()
	if _, ok, err := d.store.GetSession(ctx, in.SessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	} else if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	reserved, err := d.store.ReserveSeat(ctx, in.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	if !reserved {
		c.JSON(http.StatusConflict, gin.H{"error": "Session is full"})
		return
	}

	booking, err := d.store.CreateBooking(ctx, c.GetString("userId"), in)
	if err != nil {
		_ = d.store.ReleaseSeat(ctx, in.SessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	d.inv.PurgeSessions(ctx)
	c.JSON(http.StatusOK, booking)
}

// DELETE /api/bookings/:id — owner or admin.
func (d *deps) deleteBooking(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("userId")

	booking, ok, err := d.store.GetBooking(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if booking.UserID != userID {
		user, found, err := d.store.GetUser(ctx, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
			return
		}
		if !found || user.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
	}

	deleted, err := d.store.DeleteBooking(ctx, booking.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}
	if deleted {
		// floored at zero; a no-op if the session is already gone
		if err := d.store.ReleaseSeat(ctx, booking.SessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
			return
		}
		d.inv.PurgeSessions(ctx)
	}
	c.JSON(http.StatusOK, gin.H{"success": deleted})
}
