package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reusedev/room-stager/internal/modules/logs"
	"github.com/reusedev/room-stager/internal/service/http/handler"
	"github.com/reusedev/room-stager/internal/service/http/middleware"
)

const shutdownTimeout = 10 * time.Second

func NewEngine(h *handler.Handler, maxBodyBytes int64) *gin.Engine {
	e := gin.New()
	initRouter(e, h, maxBodyBytes)
	return e
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, port string, h *handler.Handler, maxBodyBytes int64) error {
	srv := &nethttp.Server{
		Addr:    port,
		Handler: NewEngine(h, maxBodyBytes),
	}
	errCh := make(chan error, 1)
	go func() {
		logs.Logger.Info().Str("addr", port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initRouter(e *gin.Engine, h *handler.Handler, maxBodyBytes int64) {
	e.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	e.GET("/healthz", handler.Healthz)
	api := e.Group("/api", middleware.BodyLimit(maxBodyBytes))
	{
		api.POST("/analyze", h.Analyze)
		api.POST("/furnish", h.Furnish)
		api.POST("/clear-region", h.ClearRegion)
		api.POST("/edit", h.Edit)
		api.POST("/refine", h.Refine)
	}
}
