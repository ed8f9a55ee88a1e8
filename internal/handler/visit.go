// Package handler exposes the HTTP handlers of the visit counter: the JSON
// health check and the HTML status page that records a visit per request.
package handler

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/visit-counter/internal/config"
	"github.com/iliyamo/visit-counter/internal/model"
	"github.com/iliyamo/visit-counter/internal/queue"
	"github.com/iliyamo/visit-counter/internal/repository"
)

const (
	timeLayout     = "2006-01-02 15:04:05"
	countNA        = "N/A"
	publishTimeout = 5 * time.Second
)

// Connector yields a ready visit store or reports that none is available.
type Connector interface {
	Acquire(ctx context.Context) (repository.VisitStore, error)
	Redact(err error) string
}

// EventPublisher announces recorded visits.
type EventPublisher interface {
	PublishVisitRecorded(ctx context.Context, ev queue.VisitRecordedEvent) error
}

// VisitHandler bundles dependencies for the status page and health check.
type VisitHandler struct {
	Cfg      *config.Config
	DB       Connector
	Events   EventPublisher // nil disables visit events
	Log      *zap.Logger
	Hostname string

	now func() time.Time
}

func NewVisitHandler(cfg *config.Config, db Connector, log *zap.Logger) *VisitHandler {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return &VisitHandler{Cfg: cfg, DB: db, Log: log, Hostname: host, now: time.Now}
}

// StatusPage is the data rendered into index.html.
type StatusPage struct {
	VisitCount  string
	Now         string
	Hostname    string
	GoVersion   string
	Environment string
	ServerAddr  string
	ClientAddr  string

	Connected bool
	DBError   string // redacted, set only when Connected is false
	DBHost    string
	DBPort    string
	DBName    string
	DBUser    string
}

// Page records a visit and renders the status page.  Database failures
// degrade the page; they never change the 200 status.
func (h *VisitHandler) Page(c echo.Context) error {
	info := NewRequestInfo(c)
	if info.Health {
		return h.Health(c)
	}

	page := h.statusPage(info)
	ctx := c.Request().Context()

	store, err := h.DB.Acquire(ctx)
	if err != nil {
		page.DBError = h.DB.Redact(err)
		return c.Render(http.StatusOK, "index.html", page)
	}

	total, err := h.recordVisit(ctx, store, info.ClientAddr)
	if err != nil {
		h.Log.Error("visit query failed",
			zap.String("error", h.DB.Redact(err)),
			zap.String("path", info.Path))
		page.DBError = h.DB.Redact(err)
		return c.Render(http.StatusOK, "index.html", page)
	}

	page.Connected = true
	page.VisitCount = strconv.FormatInt(total, 10)
	return c.Render(http.StatusOK, "index.html", page)
}

// recordVisit inserts one visit and returns the total afterwards.
func (h *VisitHandler) recordVisit(ctx context.Context, store repository.VisitStore, addr string) (int64, error) {
	v, err := store.Record(ctx, addr)
	if err != nil {
		return 0, err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}

	if h.Events != nil {
		ev := queue.VisitRecordedEvent{
			VisitID:     v.ID,
			IPAddress:   v.IPAddress,
			VisitedAt:   v.Timestamp.Format(time.RFC3339),
			TotalVisits: total,
		}
		go h.publish(ev)
	}
	return total, nil
}

// publish runs detached from the request so a slow broker never delays
// the page.
func (h *VisitHandler) publish(ev queue.VisitRecordedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := h.Events.PublishVisitRecorded(ctx, ev); err != nil {
		h.Log.Warn("publish visit event failed", zap.Uint64("visit_id", ev.VisitID), zap.Error(err))
	}
}

func (h *VisitHandler) statusPage(info RequestInfo) StatusPage {
	serverAddr := info.ServerAddr
	if serverAddr == "" {
		serverAddr = ":" + h.Cfg.Port
	}
	client := info.ClientAddr
	if client == "" {
		client = model.UnknownAddress
	}
	return StatusPage{
		VisitCount:  countNA,
		Now:         h.now().Format(timeLayout),
		Hostname:    h.Hostname,
		GoVersion:   runtime.Version(),
		Environment: h.Cfg.Env,
		ServerAddr:  serverAddr,
		ClientAddr:  client,
		DBHost:      h.Cfg.DB.Host,
		DBPort:      h.Cfg.DB.Port,
		DBName:      h.Cfg.DB.Name,
		DBUser:      h.Cfg.DB.User,
	}
}
