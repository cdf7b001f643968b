package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Check probes one dependency. A nil Check counts as down.
type Check func(ctx context.Context) error

// JournalProbe is the part of the journal store the monitor reads.
type JournalProbe interface {
	Ping() error
	Size() (int, error)
}

type Checks struct {
	Postgres Check
	Redis    Check
	Journal  JournalProbe
}

// PostgresCheck pings the pool.
func PostgresCheck(pool *pgxpool.Pool) Check {
	if pool == nil {
		return nil
	}
	return pool.Ping
}

// RedisCheck pings the client.
func RedisCheck(client *redislib.Client) Check {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

type Monitor struct {
	checks Checks

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(checks Checks, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		checks:   checks,
		interval: interval,
		timeout:  3 * time.Second,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether the primary store answered the last probe. The activity
// journal flushes straight to Postgres only while this holds.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.PostgreSQL
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh runs every probe concurrently and stores the result.
func (m *Monitor) Refresh(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var status Status
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		status.PostgreSQL = m.probe(gctx, "postgres", m.checks.Postgres)
		return nil
	})
	g.Go(func() error {
		status.Redis = m.probe(gctx, "redis", m.checks.Redis)
		return nil
	})
	g.Go(func() error {
		status.Journal, status.JournalBacklog = m.checkJournal()
		return nil
	})
	_ = g.Wait()
	status.LastCheck = time.Now()

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh(context.Background())
	for {
		select {
		case <-ticker.C:
			m.Refresh(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) probe(ctx context.Context, name string, check Check) bool {
	if check == nil {
		return false
	}
	if err := check(ctx); err != nil {
		m.logger.Debug("dependency probe failed", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkJournal() (bool, int) {
	if m.checks.Journal == nil {
		return false, 0
	}
	if err := m.checks.Journal.Ping(); err != nil {
		m.logger.Warn("journal ping failed", zap.Error(err))
		return false, 0
	}
	size, err := m.checks.Journal.Size()
	if err != nil {
		m.logger.Warn("journal size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
