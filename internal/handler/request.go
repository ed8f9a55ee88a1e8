package handler

import (
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthPath serves the JSON health document.
const HealthPath = "/health"

// RequestInfo carries every request input the handlers read, so the
// handlers never reach into the raw request themselves.
type RequestInfo struct {
	Path       string // request path
	Health     bool   // health check via path or ?health=
	ClientAddr string // client IP, empty when unknown
	ServerAddr string // local address the connection was accepted on
}

// NewRequestInfo extracts a RequestInfo from the echo context.
func NewRequestInfo(c echo.Context) RequestInfo {
	r := c.Request()
	info := RequestInfo{
		Path:       r.URL.Path,
		Health:     IsHealthCheck(c),
		ClientAddr: c.RealIP(),
	}
	if a, ok := r.Context().Value(http.LocalAddrContextKey).(net.Addr); ok {
		info.ServerAddr = a.String()
	}
	return info
}

// IsHealthCheck reports whether the request asks for the health document:
// either the health path or a health query flag other than "" and "0".
func IsHealthCheck(c echo.Context) bool {
	if c.Request().URL.Path == HealthPath {
		return true
	}
	v := c.QueryParam("health")
	return v != "" && v != "0"
}
