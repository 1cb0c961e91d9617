package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vollnycoelho/yogaa/models"
)

// POST /api/auth/register
func (d *deps) register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user data"})
		return
	}

	// self-registration never grants admin; admins come from seed data
	user, err := d.store.CreateUser(c.Request.Context(), models.NewUser{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     "user",
		FullName: req.FullName,
	})
	if errors.Is(err, models.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already in use"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
		return
	}

	if err := d.auth.SignIn(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/auth/login
func (d *deps) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	user, ok, err := d.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if !ok || !d.store.VerifyPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := d.auth.SignIn(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not start session"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/auth/logout
func (d *deps) logout(c *gin.Context) {
	if err := d.auth.SignOut(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/auth/me
func (d *deps) me(c *gin.Context) {
	user, ok, err := d.store.GetUser(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
