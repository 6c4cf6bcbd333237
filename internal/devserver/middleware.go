package devserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/waitlistadmin/internal/common"
	"github.com/dmitrijs2005/waitlistadmin/internal/devserver/auth"
)

const adminIDKey = "admin_id"

// requireAdmin checks the bearer token and makes the admin id available to
// the handler.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header.Get(common.AuthorizationHeaderName)
		raw, ok := strings.CutPrefix(h, common.BearerPrefix)
		if !ok || raw == "" {
			return fail(c, http.StatusUnauthorized, "Unauthorized")
		}

		id, err := auth.AdminIDFromToken(raw, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return fail(c, http.StatusUnauthorized, "Token expired")
			}
			return fail(c, http.StatusUnauthorized, "Invalid token")
		}
		if _, err := s.store.AdminByID(id); err != nil {
			return fail(c, http.StatusUnauthorized, "Unauthorized")
		}

		c.Set(adminIDKey, id)
		return next(c)
	}
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		req := c.Request()
		s.logger.Debug(req.Context(), "request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start),
		)
		return nil
	}
}

// errorHandler renders echo errors in the backend's {"message": ...} shape.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		s.logger.Error(c.Request().Context(), "handler failed", "error", err)
	}
	_ = fail(c, code, msg)
}
