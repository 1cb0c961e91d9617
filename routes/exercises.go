package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollnycoelho/yogaa/models"
)

// GET /api/exercises
func (d *deps) listExercises(c *gin.Context) {
	exercises, err := d.store.ListExercises(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exercises"})
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// POST /api/exercises (admin)
func (d *deps) createExercise(c *gin.Context) {
	var in models.NewExercise
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise data"})
		return
	}

	exercise, err := d.store.CreateExercise(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}
	d.inv.PurgeExercises(c.Request.Context())
	c.JSON(http.StatusOK, exercise)
}

// DELETE /api/exercises/:id (admin)
func (d *deps) deleteExercise(c *gin.Context) {
	deleted, err := d.store.DeleteExercise(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete exercise"})
		return
	}
	if deleted {
		d.inv.PurgeExercises(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"success": deleted})
}
