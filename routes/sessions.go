package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollnycoelho/yogaa/models"
)

// GET /api/sessions
func (d *deps) listSessions(c *gin.Context) {
	sessions, err := d.store.ListSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// GET /api/sessions/:id
func (d *deps) getSession(c *gin.Context) {
	session, ok, err := d.store.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch session"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// POST /api/sessions (admin)
func (d *deps) createSession(c *gin.Context) {
	var in models.NewSession
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session data"})
		return
	}

	session, err := d.store.CreateSession(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	d.inv.PurgeSessions(c.Request.Context())
	c.JSON(http.StatusOK, session)
}

// PATCH /api/sessions/:id (admin)
func (d *deps) updateSession(c *gin.Context) {
	var in models.SessionUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session data"})
		return
	}

	session, ok, err := d.store.UpdateSession(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	d.inv.PurgeSessions(c.Request.Context())
	c.JSON(http.StatusOK, session)
}

// DELETE /api/sessions/:id (admin). Bookings cascade with the session.
func (d *deps) deleteSession(c *gin.Context) {
	deleted, err := d.store.DeleteSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	d.inv.PurgeSessions(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
