package monitor

import (
	"context"
	"sync"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/casaflow/backend/internal/infrastructure/localstore"
)

// Monitor periodically probes the remote document store, the session
// store, and the local mirror, and keeps the latest snapshot for the
// health endpoint. A nil mongo client marks the remote tier as statically
// offline.
type Monitor struct {
	mongo *mongo.Client
	redis *redislib.Client
	local *localstore.Store

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(mongoClient *mongo.Client, redisClient *redislib.Client, local *localstore.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		mongo:    mongoClient,
		redis:    redisClient,
		local:    local,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// RemoteOnline reports whether the document store answered the last probe.
func (m *Monitor) RemoteOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Mongo
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	localOK, repairSize := m.checkLocal()
	status := Status{
		Mongo:       m.checkMongo(),
		Redis:       m.checkRedis(),
		LocalStore:  localOK,
		RepairQueue: repairSize,
		LastCheck:   time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkMongo() bool {
	if m.mongo == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return m.mongo.Ping(ctx, nil) == nil
}

func (m *Monitor) checkRedis() bool {
	if m.redis == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.redis.Ping(ctx).Err() == nil
}

func (m *Monitor) checkLocal() (bool, int) {
	if m.local == nil {
		return false, 0
	}
	size, err := m.local.Size(localstore.BucketRepairs)
	if err != nil {
		m.logger.Warn("local store check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
