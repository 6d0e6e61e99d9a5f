package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "github.com/JoshCLWren/TrailGuard/docs"
	"github.com/JoshCLWren/TrailGuard/internal/app/controllers"
	"github.com/JoshCLWren/TrailGuard/internal/app/middleware"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/domain/services/container"
	"github.com/JoshCLWren/TrailGuard/internal/error/response"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
	"github.com/JoshCLWren/TrailGuard/pkg/metrics"
)

// customMethods are the verbs accepted after a colon in the last path segment.
var customMethods = map[string]bool{
	"activate":      true,
	"cancel":        true,
	"checkFirmware": true,
	"batchCreate":   true,
}

// customMethodRewriter turns /x:verb into /x/verb so gin can route it.
type customMethodRewriter struct {
	next http.Handler
}

func (h customMethodRewriter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	if i := strings.LastIndexByte(p, ':'); i > strings.LastIndexByte(p, '/') {
		if verb := p[i+1:]; customMethods[verb] {
			r.URL.Path = p[:i] + "/" + verb
			r.URL.RawPath = ""
		}
	}
	h.next.ServeHTTP(w, r)
}

// SetupRouter builds the HTTP handler for every endpoint
func SetupRouter(container *container.ServiceContainer, cfg *config.Config) http.Handler {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.RateLimiter(middleware.RateLimiterConfig{
			Rate:      cfg.RateLimit,
			SkipPaths: []string{"/health", "/metrics"},
		}),
	)
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})

	registerOperationalRoutes(r, container)
	registerUserRoutes(r, container, middleware.NewResponseCache(cfg.ResponseCacheTTL))

	return customMethodRewriter{next: r}
}

// registerOperationalRoutes wires health, docs and metrics
func registerOperationalRoutes(r *gin.Engine, container *container.ServiceContainer) {
	r.GET("/health", controllers.HandleHealthFunc(container, "health"))
	r.GET("/db", controllers.HandleHealthFunc(container, "db"))

	r.GET("/openapi.json", func(c *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			logger.Error("read swagger doc: %v", err)
			response.ServerError(c)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// registerUserRoutes wires every resource under /v1/users/:user_id
func registerUserRoutes(r *gin.Engine, container *container.ServiceContainer, cache *middleware.ResponseCache) {
	userService := container.GetService("user").(services.InterfaceUserService)

	users := r.Group("/v1/users/:user_id")
	users.Use(middleware.RequireUser(userService), cache.PurgeOnWrite())

	users.GET("", controllers.HandleUserFunc(container, "getUser"))

	// devices
	devices := users.Group("/devices")
	{
		devices.GET("", cache.Cache(), controllers.HandleDeviceFunc(container, "listDevices"))
		devices.POST("", controllers.HandleDeviceFunc(container, "pairDevice"))
		devices.GET("/:device_id", controllers.HandleDeviceFunc(container, "getDevice"))
		devices.PATCH("/:device_id", controllers.HandleDeviceFunc(container, "patchDevice"))
		devices.GET("/:device_id/checkFirmware", controllers.HandleDeviceFunc(container, "checkFirmware"))

		devices.GET("/:device_id/breadcrumbs", cache.Cache(), controllers.HandleBreadcrumbFunc(container, "listBreadcrumbs"))
		devices.POST("/:device_id/breadcrumbs", controllers.HandleBreadcrumbFunc(container, "createBreadcrumb"))
		devices.POST("/:device_id/breadcrumbs/batchCreate", controllers.HandleBreadcrumbFunc(container, "batchCreateBreadcrumbs"))
	}

	users.GET("/checkIns", cache.Cache(), controllers.HandleCheckInFunc(container, "listCheckIns"))
	users.POST("/checkIns", controllers.HandleCheckInFunc(container, "createCheckIn"))

	users.GET("/familyMembers", cache.Cache(), controllers.HandleFamilyFunc(container, "listFamilyMembers"))
	users.POST("/familyMembers", controllers.HandleFamilyFunc(container, "createFamilyMember"))
	users.DELETE("/familyMembers/:member_id", controllers.HandleFamilyFunc(container, "deleteFamilyMember"))

	users.GET("/settings", controllers.HandleSettingsFunc(container, "getSettings"))
	users.PATCH("/settings", controllers.HandleSettingsFunc(container, "patchSettings"))

	users.GET("/sos", controllers.HandleSOSFunc(container, "getStatus"))
	users.POST("/sos/activate", controllers.HandleSOSFunc(container, "activate"))
	users.POST("/sos/cancel", controllers.HandleSOSFunc(container, "cancel"))

	users.GET("/messages", cache.Cache(), controllers.HandleMessageFunc(container, "listMessages"))
	users.POST("/messages", controllers.HandleMessageFunc(container, "createMessage"))
}
