package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/iliyamo/visit-counter/internal/config"
	"github.com/iliyamo/visit-counter/internal/repository"
)

const pingTimeout = 5 * time.Second

// DSN builds the go-sql-driver DSN for cfg.
// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
func DSN(cfg config.DBConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Open creates the MySQL pool for cfg.  No connection is made until the
// pool is first used.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Provider hands out a ready visit store.  The pool is opened lazily and the
// visits table is created on the first successful connection; until then
// every Acquire retries, so the service recovers once MySQL comes up.
type Provider struct {
	cfg  config.DBConfig
	log  *zap.Logger
	open func(config.DBConfig) (*sql.DB, error)

	mu   sync.Mutex
	db   *sql.DB
	repo *repository.VisitRepo
}

func NewProvider(cfg config.DBConfig, log *zap.Logger) *Provider {
	return &Provider{cfg: cfg, log: log, open: Open}
}

// Acquire returns the visit store, connecting first if needed.  Failures are
// logged and returned wrapping repository.ErrUnavailable.
func (p *Provider) Acquire(ctx context.Context) (repository.VisitStore, error) {
	db, repo, err := p.pool()
	if err != nil {
		return nil, p.fail(err)
	}
	if repo != nil {
		return repo, nil
	}

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, p.fail(err)
	}

	repo = repository.NewVisitRepo(db)
	if err := repo.EnsureTable(ctx); err != nil {
		return nil, p.fail(err)
	}

	p.mu.Lock()
	if p.repo == nil {
		p.repo = repo
		p.log.Info("database ready",
			zap.String("host", p.cfg.Host),
			zap.String("name", p.cfg.Name),
			zap.String("user", p.cfg.User))
	}
	repo = p.repo
	p.mu.Unlock()
	return repo, nil
}

// pool returns the open pool and, once the schema is in place, the repo.
func (p *Provider) pool() (*sql.DB, *repository.VisitRepo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.repo != nil {
		return p.db, p.repo, nil
	}
	if p.db == nil {
		db, err := p.open(p.cfg)
		if err != nil {
			return nil, nil, err
		}
		p.db = db
	}
	return p.db, nil, nil
}

func (p *Provider) fail(err error) error {
	p.log.Warn("database connection failed", zap.String("error", p.Redact(err)))
	return fmt.Errorf("%w: %w", repository.ErrUnavailable, err)
}

// Redact returns the error text with the configured password masked.
func (p *Provider) Redact(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if p.cfg.Password != "" {
		msg = strings.ReplaceAll(msg, p.cfg.Password, "****")
	}
	return msg
}

// Close releases the pool.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db, p.repo = nil, nil
	return err
}
