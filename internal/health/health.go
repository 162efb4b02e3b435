package health

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Status is the outcome of one database probe
type Status struct {
	OK        bool      `json:"ok"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker probes database readiness on demand and on a cron schedule
type Checker struct {
	db      *sql.DB
	log     *logrus.Logger
	timeout time.Duration
	cron    *cron.Cron

	mu   sync.RWMutex
	last Status
}

// NewChecker initializes a checker for db
func NewChecker(db *sql.DB, log *logrus.Logger) *Checker {
	return &Checker{db: db, log: log, timeout: 2 * time.Second}
}

// Check runs SELECT 1 against the database and records the result
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var one int
	err := c.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
	if err != nil {
		err = fmt.Errorf("database unreachable: %w", err)
	}

	c.mu.Lock()
	wasOK := c.last.OK || c.last.CheckedAt.IsZero()
	c.last = Status{OK: err == nil, CheckedAt: time.Now()}
	c.mu.Unlock()

	switch {
	case err != nil && wasOK:
		c.log.WithError(err).Warn("Database health check failed")
	case err == nil && !wasOK:
		c.log.Info("Database health check recovered")
	}
	return err
}

// Last returns the most recent probe result
func (c *Checker) Last() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// Start schedules the heartbeat probe with a cron spec such as "@every 30s"
func (c *Checker) Start(spec string) error {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		c.Check(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid health schedule %q: %w", spec, err)
	}
	c.cron = scheduler
	c.cron.Start()
	c.log.Infof("Health heartbeat scheduled: %s", spec)
	return nil
}

// Stop halts the heartbeat and waits for a running probe to finish
func (c *Checker) Stop() {
	if c.cron == nil {
		return
	}
	<-c.cron.Stop().Done()
}
