package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/herald/internal/auth"
	"github.com/monocle-dev/herald/internal/config"
	"github.com/monocle-dev/herald/internal/handlers"
	"github.com/monocle-dev/herald/internal/middleware"
	"github.com/monocle-dev/herald/internal/realtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/monocle-dev/herald/docs"
)

const APIPrefix = "/api/v1"

// Deps are the shared handles every resource is built from.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Tokens *auth.TokenService
	Hasher auth.PasswordHasher
	Hub    *realtime.Hub
	Log    zerolog.Logger
}

// Resource mounts one API resource under APIPrefix/Path.
type Resource struct {
	Path     string
	Register func(group *gin.RouterGroup, authn gin.HandlerFunc)
}

// Resources is the static registration list. New resources are appended here.
func Resources(deps Deps) []Resource {
	return []Resource{
		authResource(deps),
		userResource(deps),
		healthResource(deps),
		notificationResource(deps),
	}
}

func NewRouter(deps Deps) *gin.Engine {
	if !deps.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(
		middleware.SecurityHeaders(deps.Config.IsDevelopment()),
		middleware.RequestLogger(deps.Log),
		middleware.Metrics(),
		middleware.ErrorHandler(deps.Log, deps.Config.IsDevelopment()),
		middleware.Recovery(deps.Log),
	)
	r.NoRoute(middleware.NoRoute)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
	}

	authn := middleware.Authenticate(deps.Tokens)
	v1 := r.Group(APIPrefix)
	for _, res := range Resources(deps) {
		res.Register(v1.Group(res.Path), authn)
	}

	return r
}
