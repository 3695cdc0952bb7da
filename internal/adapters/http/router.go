package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/example/barboard/internal/adapters/ws"
	"github.com/example/barboard/internal/app"
	"github.com/example/barboard/internal/config"
	"github.com/example/barboard/internal/domain"
)

// Handlers bundles what the REST surface needs.
type Handlers struct {
	Repo  *app.Repository
	Menu  *app.MenuService
	Users *app.UserService
	WS    *ws.Controller
}

func SetupRouter(ctx context.Context, cfg *config.Config, h *Handlers) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("BarboardSessions", store))

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/login.html")
	})
	r.GET("/login", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/login.html")
	})
	r.GET("/waiter", h.rolePage(cfg, domain.RoleWaiter, "waiter.html"))
	r.GET("/barmen", h.rolePage(cfg, domain.RoleBarmen, "barmen.html"))
	r.GET("/admin", h.rolePage(cfg, domain.RoleAdmin, "admin.html"))

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.POST("/login", h.login)
	api.POST("/logout", h.logout)
	api.GET("/me", h.me)

	api.GET("/menu", h.listMenu)
	api.GET("/menu/all", requireRole(domain.RoleAdmin), h.listMenuAll)
	api.POST("/menu", requireRole(domain.RoleAdmin), h.createMenuItem)
	api.PUT("/menu/:id", requireRole(domain.RoleAdmin), h.updateMenuItem)
	api.DELETE("/menu/:id", requireRole(domain.RoleAdmin), h.deleteMenuItem)

	authed := api.Group("", requireAuth())
	authed.GET("/orders", h.listOrders)
	authed.GET("/orders/stats", h.orderStats)
	authed.POST("/orders", h.createOrder)
	authed.PATCH("/orders/:id/status", h.setOrderStatus)
	authed.DELETE("/orders/:id", h.deleteOrder)
	authed.POST("/tables/:tableNum/clear", h.clearTable)
	authed.GET("/tables", h.listTables)

	api.GET("/users", requireRole(domain.RoleAdmin), h.listUsers)
	api.POST("/users", requireRole(domain.RoleAdmin), h.createUser)
	api.DELETE("/users/:id", requireRole(domain.RoleAdmin), h.deleteUser)

	r.GET("/ws", requireAuth(), func(c *gin.Context) {
		h.WS.Handle(ctx, c)
	})

	return r
}

// rolePage gates a front-end page behind a role, redirecting to the
// login page instead of answering with a JSON error.
func (h *Handlers) rolePage(cfg *config.Config, role domain.Role, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !user.Role.Satisfies(role) {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		c.File(cfg.StaticPath + "/" + page)
	}
}
