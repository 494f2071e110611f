package main

import (
	"context"
	"net/http"
	"time"

	"github.com/diewo77/gst-invoices/auth"
	"github.com/diewo77/gst-invoices/internal/billing"
	"github.com/diewo77/gst-invoices/internal/config"
	"github.com/diewo77/gst-invoices/internal/db"
	"github.com/diewo77/gst-invoices/internal/export"
	"github.com/diewo77/gst-invoices/internal/server"
	"github.com/diewo77/gst-invoices/internal/store"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App owns the database connection and the root handler.
type App struct {
	db      *gorm.DB
	handler http.Handler
	sched   *cron.Cron
}

// NewApp connects, migrates, optionally seeds and builds the routes.
func NewApp(cfg *config.Config) (*App, error) {
	ids, err := billing.NewSnowflakeIDs(cfg.Server.Node)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn); err != nil {
		return nil, err
	}
	if cfg.Database.Seed {
		if err := db.Seed(conn, ids); err != nil {
			return nil, err
		}
	}

	st := store.New(conn, ids)
	sessions := auth.NewManager([]byte(cfg.Auth.SessionSecret),
		auth.WithSecureCookie(cfg.Auth.SecureCookie),
		auth.WithVerifier(func(ctx context.Context, id int64) bool {
			_, err := st.UserByID(ctx, id)
			return err == nil
		}),
	)
	drafts := billing.NewRegistry(ids, billing.WithIdleTTL(cfg.Server.DraftTTL))
	sched, err := startJobs(drafts, cfg.Server.DraftTTL)
	if err != nil {
		return nil, err
	}

	handler := server.New(server.Deps{
		Store:     st,
		Sessions:  sessions,
		Drafts:    drafts,
		Finalizer: billing.Finalizer{IDs: ids, Numbers: st, Now: time.Now},
		Seller: export.Seller{
			Name:  cfg.Business.Name,
			GSTIN: cfg.Business.GSTIN,
		},
		RequireAuth: cfg.Auth.Required,
	})
	return &App{db: conn, handler: handler, sched: sched}, nil
}

// startJobs schedules the idle draft sweep. A zero TTL schedules nothing.
func startJobs(drafts *billing.Registry, ttl time.Duration) (*cron.Cron, error) {
	sched := cron.New()
	if ttl > 0 {
		_, err := sched.AddFunc("@every "+sweepInterval(ttl).String(), func() {
			if n := drafts.Sweep(); n > 0 {
				zap.L().Info("expired idle drafts", zap.Int("count", n), zap.Int("open", drafts.Len()))
			}
		})
		if err != nil {
			return nil, errors.Wrap(err, "schedule draft sweep")
		}
	}
	sched.Start()
	return sched, nil
}

// sweepInterval is a quarter of the TTL, capped at one minute.
func sweepInterval(ttl time.Duration) time.Duration {
	if every := ttl / 4; every < time.Minute {
		return every
	}
	return time.Minute
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// Close stops the scheduled jobs and releases the database connection.
func (a *App) Close() error {
	<-a.sched.Stop().Done()
	sqlDB, err := a.db.DB()
	if err != nil {
		return errors.Wrap(err, "database handle")
	}
	return sqlDB.Close()
}
