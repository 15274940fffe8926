package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apperrors "skinsense.io/application/appErrors"
	"skinsense.io/application/constants"
	"skinsense.io/application/controller"
	"skinsense.io/application/middlewares"
	"skinsense.io/application/services/history"
	"skinsense.io/infrastructure/env"
	"skinsense.io/infrastructure/logger"
	ratelimit "skinsense.io/infrastructure/ratelimit"
	webRoutev1 "skinsense.io/infrastructure/routes/ginRouter/web/v1"
	server_response "skinsense.io/infrastructure/serverResponse"
	startup "skinsense.io/infrastructure/startUp"
)

const shutdownGracePeriod = 5 * time.Second

type ginServer struct{}

// RouterOptions configures the gin engine independently of process startup.
type RouterOptions struct {
	Analyzer          controller.SkinAnalyzer
	History           *history.Service
	AllowedOrigins    []string
	RequestsPerSecond float64
	MaxUploadBytes    int64
}

// NewRouter builds the engine with every middleware and route mounted.
func NewRouter(opts RouterOptions) *gin.Engine {
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middlewares.AppContextMiddleware())
	server.Use(middlewares.RequestLogMiddleware())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "User-Agent", middlewares.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(opts.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	server.Use(cors.New(corsConfig))

	if opts.RequestsPerSecond > 0 {
		server.Use(ratelimit.TokenBucketPerIP(opts.RequestsPerSecond))
	}
	if opts.MaxUploadBytes > 0 {
		server.MaxMultipartMemory = opts.MaxUploadBytes
	}

	api := server.Group("/api")
	{
		webRoutev1.FaceRouter(api, opts.Analyzer, opts.MaxUploadBytes)
		webRoutev1.HistoryRouter(api, opts.History)
	}

	server.GET("/", func(ctx *gin.Context) {
		server_response.Responder.RespondRaw(ctx, http.StatusOK, map[string]any{
			"message": constants.API_RUNNING,
		})
	})

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil)
	})

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL))
	})

	return server
}

func (s *ginServer) Start() {
	services := startup.StartServices()
	defer startup.CleanUpServices()

	gin.SetMode(env.GetString("GIN_MODE", gin.DebugMode))
	router := NewRouter(RouterOptions{
		Analyzer:          services.Analyzer,
		History:           services.History,
		AllowedOrigins:    env.GetList("CORS_ALLOWED_ORIGINS"),
		RequestsPerSecond: env.GetFloat("RATE_LIMIT_PER_SECOND", 25),
		MaxUploadBytes:    int64(env.GetInt("MAX_UPLOAD_MB", 15)) << 20,
	})

	port := env.GetString("PORT", "5000")
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", logger.LoggerOptions{
				Key:  "error",
				Data: err.Error(),
			})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shut down", logger.LoggerOptions{
			Key:  "error",
			Data: err.Error(),
		})
	}
}
