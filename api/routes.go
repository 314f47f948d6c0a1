package api

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	config "github.com/ledger-calendar-bot/assistant/config"
	l "github.com/ledger-calendar-bot/assistant/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router interface {
	NotFoundHandler(c *gin.Context)
	HealthcheckHandler(c *gin.Context)
	MetricsHandler(c *gin.Context)
}

type RouterImpl struct {
	cfg     config.Config
	logger  l.Logger
	metrics http.Handler
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ResponseJSON struct {
	Message string `json:"message"`
}

func NewRouter(cfg config.Config, logger l.Logger, gatherer prometheus.Gatherer) Router {
	return &RouterImpl{
		cfg:     cfg,
		logger:  logger,
		metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func (router *RouterImpl) NotFoundHandler(c *gin.Context) {
	router.logger.Debug("requested route is not found", "path", c.Request.URL.Path)
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Requested route is not found"})
}

func (router *RouterImpl) HealthcheckHandler(c *gin.Context) {
	router.logger.Debug("healthcheck")
	c.JSON(http.StatusOK, ResponseJSON{Message: "OK"})
}

// MetricsHandler exposes the Prometheus registry fed by the OpenTelemetry exporter
func (router *RouterImpl) MetricsHandler(c *gin.Context) {
	if !router.cfg.EnableTelemetry {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Telemetry is disabled"})
		return
	}
	router.metrics.ServeHTTP(c.Writer, c.Request)
}

// NewEngine registers the operational routes on a fresh gin engine
func NewEngine(router Router, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares...)

	r.GET("/health", router.HealthcheckHandler)
	r.GET("/metrics", router.MetricsHandler)
	r.NoRoute(router.NotFoundHandler)
	return r
}
