package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/app"
	"github.com/example/barboard/internal/domain"
)

const sessionKey = "user"

// sessionUser is what the cookie session carries about the caller.
type sessionUser struct {
	ID       int         `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	Name     string      `json:"name"`
}

// currentUser decodes the session. The gate is consulted here at the
// boundary; repository operations never check roles themselves.
func currentUser(c *gin.Context) (sessionUser, bool) {
	sess := sessions.Default(c)
	raw, ok := sess.Get(sessionKey).(string)
	if !ok || raw == "" {
		return sessionUser{}, false
	}
	var u sessionUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return sessionUser{}, false
	}
	return u, true
}

func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(sessionKey, user)
		c.Next()
	}
}

// requireRole admits the named role and admins.
func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !user.Role.Satisfies(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Set(sessionKey, user)
		c.Next()
	}
}

func caller(c *gin.Context) sessionUser {
	u, _ := c.Get(sessionKey)
	su, _ := u.(sessionUser)
	return su
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing username or password"})
		return
	}

	user, err := h.Users.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	su := sessionUser{ID: user.ID, Username: user.Username, Role: user.Role, Name: user.Name}
	raw, err := json.Marshal(su)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	sess := sessions.Default(c)
	sess.Set(sessionKey, string(raw))
	if err := sess.Save(); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	redirect := "/" + string(user.Role)
	log.Info().Str("module", "adapters.http").Str("username", user.Username).Str("role", string(user.Role)).Msg("login")
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        su,
		"redirectUrl": redirect,
	})
}

func (h *Handlers) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{MaxAge: -1, Path: "/"})
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handlers) me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}
