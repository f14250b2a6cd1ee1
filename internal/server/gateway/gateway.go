// Package gateway serves stored profile images over HTTP so that image
// references handed out by the API can be dereferenced, plus a readiness
// probe.
package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/dmitrijs2005/profilesync/internal/server/assets"
	"github.com/dmitrijs2005/profilesync/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// AssetOpener streams stored objects. assets.Store implements it.
type AssetOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, models.StoredAsset, error)
}

// ReadyChecker reports whether the backing stores are reachable.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

type Gateway struct {
	address string
	echo    *echo.Echo
	refs    assets.RefBuilder
	assets  AssetOpener
	ready   ReadyChecker
	logger  logging.Logger
}

// NewGateway mounts the asset route under the path of refs.BaseURL.
func NewGateway(a string, l logging.Logger, refs assets.RefBuilder, store AssetOpener, ready ReadyChecker) *Gateway {
	g := &Gateway{
		address: a,
		echo:    echo.New(),
		refs:    assets.RefBuilder{BaseURL: refs.MountPath()},
		assets:  store,
		ready:   ready,
		logger:  l.With("module", "http_gateway"),
	}

	g.echo.HideBanner = true
	g.echo.HidePort = true

	g.echo.Use(middleware.Recover())
	g.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				g.logger.Warn(c.Request().Context(), "request failed", append(args, logging.Err(v.Error))...)
				return nil
			}
			g.logger.Debug(c.Request().Context(), "request served", args...)
			return nil
		},
	}))

	g.echo.GET("/healthz", g.healthz)
	g.echo.GET(g.refs.BaseURL+"/*", g.getAsset)

	return g
}

func (g *Gateway) getAsset(c echo.Context) error {
	ctx := c.Request().Context()

	key, err := g.refs.Key(c.Request().URL.EscapedPath())
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	body, meta, err := g.assets.Open(ctx, key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		g.logger.Error(ctx, "asset not opened", "key", key, logging.Err(err))
		return echo.NewHTTPError(http.StatusBadGateway)
	}
	defer body.Close()

	h := c.Response().Header()
	if meta.Size > 0 {
		h.Set(echo.HeaderContentLength, strconv.FormatInt(meta.Size, 10))
	}
	if meta.ETag != "" {
		h.Set("ETag", `"`+meta.ETag+`"`)
	}
	contentType := meta.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, contentType, body)
}

func (g *Gateway) healthz(c echo.Context) error {
	if err := g.ready.Ready(c.Request().Context()); err != nil {
		g.logger.Warn(c.Request().Context(), "not ready", logging.Err(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (g *Gateway) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		g.logger.Info(ctx, "Stopping HTTP gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := g.echo.Shutdown(shutdownCtx); err != nil {
			g.logger.Error(ctx, "HTTP gateway shutdown failed", logging.Err(err))
		}
	}()

	g.logger.Info(ctx, "Starting HTTP gateway", "address", g.address)

	if err := g.echo.Start(g.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
