package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"go.uber.org/zap"

	"babounette/internal/infrastructure/config"
	"babounette/internal/pkg/common"
)

// Manager cache mémoire des réponses IA, évincé en LRU
type Manager struct {
	cfg   config.CacheConfig
	mu    sync.Mutex
	store map[string]entry
	stats stats
	stop  chan struct{}
}

type entry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

type stats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager crée le cache mémoire et démarre son nettoyage périodique
func NewManager(cfg config.CacheConfig) *Manager {
	m := &Manager{
		cfg:   cfg,
		store: make(map[string]entry),
		stop:  make(chan struct{}),
	}

	go m.runCleanup()

	common.LogInfo("cache mémoire initialisé",
		zap.Int("max_size", cfg.MaxSize),
		zap.Duration("ttl", cfg.TTL),
		zap.Duration("cleanup_interval", cfg.CleanupInterval),
	)

	return m
}

// Key clé de cache dérivée du prompt
func Key(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "ai:" + hex.EncodeToString(hash[:])
}

// Get renvoie la valeur en cache et vrai lors d'un hit
func (m *Manager) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.store[key]
	if !ok {
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogCacheMiss("memory", key)
		return "", false
	}

	e.lastAccess = time.Now()
	e.accessCount++
	m.store[key] = e
	m.stats.hits++
	common.LogCacheHit("memory", key)
	return e.value, true
}

// Set enregistre une valeur, en évinçant au besoin
func (m *Manager) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.cfg.MaxSize {
		m.removeExpired()
		if len(m.store) >= m.cfg.MaxSize {
			m.evictLRU()
		}
		if len(m.store) >= m.cfg.MaxSize {
			common.LogWarn("cache mémoire saturé", zap.Int("size", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[key] = entry{
		value:      value,
		expiresAt:  now.Add(m.cfg.TTL),
		lastAccess: now,
	}
	return nil
}

func (m *Manager) runCleanup() {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			removed := m.removeExpired()
			m.mu.Unlock()
			if removed > 0 {
				common.LogDebug("entrées de cache expirées retirées", zap.Int("count", removed))
			}
		case <-m.stop:
			return
		}
	}
}

// removeExpired à appeler verrou tenu
func (m *Manager) removeExpired() int {
	now := time.Now()
	count := 0
	for key, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, key)
			m.stats.evictions++
			count++
		}
	}
	return count
}

// evictLRU à appeler verrou tenu
func (m *Manager) evictLRU() {
	var victim string
	var victimAccess time.Time
	var victimCount int

	for key, e := range m.store {
		if victim == "" ||
			e.accessCount < victimCount ||
			(e.accessCount == victimCount && e.lastAccess.Before(victimAccess)) {
			victim = key
			victimAccess = e.lastAccess
			victimCount = e.accessCount
		}
	}

	if victim != "" {
		delete(m.store, victim)
		m.stats.evictions++
	}
}

// Stats instantané des compteurs du cache
func (m *Manager) Stats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.stats.hits + m.stats.misses
	ratio := 0.0
	if total > 0 {
		ratio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.cfg.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": ratio,
	}
}

// Close arrête le nettoyage et vide le cache
func (m *Manager) Close() error {
	close(m.stop)
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]entry)
	common.LogInfo("cache mémoire fermé",
		zap.Int64("hits", m.stats.hits),
		zap.Int64("misses", m.stats.misses),
		zap.Int64("evictions", m.stats.evictions),
	)
	return nil
}
