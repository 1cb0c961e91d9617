package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollnycoelho/yogaa/models"
)

// GET /api/announcements — newest first.
func (d *deps) listAnnouncements(c *gin.Context) {
	announcements, err := d.store.ListAnnouncements(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch announcements"})
		return
	}
	c.JSON(http.StatusOK, announcements)
}

// POST /api/announcements (admin) — the caller becomes the author.
func (d *deps) createAnnouncement(c *gin.Context) {
	var in models.NewAnnouncement
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement data"})
		return
	}

	announcement, err := d.store.CreateAnnouncement(c.Request.Context(), c.GetString("userId"), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create announcement"})
		return
	}
	d.inv.PurgeAnnouncements(c.Request.Context())
	c.JSON(http.StatusOK, announcement)
}

// DELETE /api/announcements/:id (admin)
func (d *deps) deleteAnnouncement(c *gin.Context) {
	deleted, err := d.store.DeleteAnnouncement(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete announcement"})
		return
	}
	if deleted {
		d.inv.PurgeAnnouncements(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"success": deleted})
}
