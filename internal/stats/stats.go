package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/NoraMoser/exploring/internal/config"
	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Timestamp time.Time      `json:"timestamp"`
	Memory    MemoryStats    `json:"memory"`
	Cache     CacheStats     `json:"cache"`
	Database  *DatabaseStats `json:"database,omitempty"`
	Favorites FavoritesStats `json:"favorites"`
	Runtime   RuntimeStats   `json:"runtime"`
}

type MemoryStats struct {
	Alloc        uint64 `json:"alloc"`
	TotalAlloc   uint64 `json:"total_alloc"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapSys      uint64 `json:"heap_sys"`
	HeapInuse    uint64 `json:"heap_inuse"`
	HeapReleased uint64 `json:"heap_released"`
}

type CacheStats struct {
	Backend string `json:"backend"`
}

type DatabaseStats struct {
	Type           string      `json:"type"`
	TotalRecords   int64       `json:"total_records"`
	ExpiredEntries int64       `json:"expired_entries"`
	SizeBytes      int64       `json:"size_bytes"`
	TableStats     []TableStat `json:"table_stats"`
}

type TableStat struct {
	Name      string `json:"name"`
	RowCount  int64  `json:"row_count"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type FavoritesStats struct {
	ActiveSessions int `json:"active_sessions"`
}

type RuntimeStats struct {
	NumGoroutines int   `json:"num_goroutines"`
	NumCPU        int   `json:"num_cpu"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// SessionCounter reports the number of live favorites sessions
type SessionCounter interface {
	SessionCount() int
}

type Collector struct {
	db         *sqlx.DB
	config     config.DBConfig
	backend    config.CacheBackend
	sessions   SessionCounter
	startTime  time.Time
	cachedMem  *MemoryStats
	cacheTime  time.Time
	cacheMutex sync.RWMutex
	now        func() time.Time
}

var (
	memStatsCacheDuration = 5 * time.Second
)

var cacheTables = []string{"request_cache"}

// NewCollector creates a collector. db may be nil when the cache backend does
// not use the database; sessions may be nil outside the server.
func NewCollector(db *sqlx.DB, cfg config.DBConfig, backend config.CacheBackend, sessions SessionCounter) *Collector {
	return &Collector{
		db:        db,
		config:    cfg,
		backend:   backend,
		sessions:  sessions,
		startTime: time.Now(),
		now:       time.Now,
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		Timestamp: c.now(),
		Cache:     CacheStats{Backend: string(c.backend)},
	}

	stats.Memory = c.collectMemoryStats()

	if c.db != nil {
		dbStats, err := c.collectDatabaseStats(ctx)
		if err != nil {
			return nil, err
		}
		stats.Database = dbStats
	}
	if c.sessions != nil {
		stats.Favorites.ActiveSessions = c.sessions.SessionCount()
	}
	stats.Runtime = c.collectRuntimeStats()

	return stats, nil
}

func (c *Collector) collectMemoryStats() MemoryStats {
	c.cacheMutex.RLock()
	if c.cachedMem != nil && time.Since(c.cacheTime) < memStatsCacheDuration {
		mem := *c.cachedMem
		c.cacheMutex.RUnlock()
		return mem
	}
	c.cacheMutex.RUnlock()

	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	mem := MemoryStats{
		Alloc:        m.Alloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapInuse:    m.HeapInuse,
		HeapReleased: m.HeapReleased,
	}

	c.cachedMem = &mem
	c.cacheTime = time.Now()

	return mem
}

func (c *Collector) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{
		Type: string(c.config.Type),
	}

	if totalSize, err := c.getDatabaseSize(ctx); err == nil {
		stats.SizeBytes = totalSize
	}

	tableStats, err := c.getTableStats(ctx)
	if err != nil {
		return nil, err
	}
	stats.TableStats = tableStats

	var totalRecords int64
	for _, ts := range tableStats {
		totalRecords += ts.RowCount
	}
	stats.TotalRecords = totalRecords

	expired, err := c.getExpiredCount(ctx)
	if err == nil {
		stats.ExpiredEntries = expired
	}

	return stats, nil
}

func (c *Collector) getDatabaseSize(ctx context.Context) (int64, error) {
	var size int64
	var err error

	if c.config.Type == config.DBTypePostgreSQL {
		err = c.db.GetContext(ctx, &size, "SELECT pg_database_size(current_database())")
	} else {
		err = c.db.GetContext(ctx, &size, "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
	}

	if err != nil {
		return 0, err
	}
	return size, nil
}

func (c *Collector) getExpiredCount(ctx context.Context) (int64, error) {
	querySQL := "SELECT COUNT(*) FROM request_cache WHERE expires_at > 0 AND expires_at < ?"
	if c.config.Type == config.DBTypePostgreSQL {
		querySQL = "SELECT COUNT(*) FROM request_cache WHERE expires_at > 0 AND expires_at < $1"
	}

	var count int64
	if err := c.db.GetContext(ctx, &count, querySQL, c.now().UnixNano()); err != nil {
		return 0, fmt.Errorf("failed to count expired cache entries: %w", err)
	}
	return count, nil
}

func (c *Collector) getTableStats(ctx context.Context) ([]TableStat, error) {
	var stats []TableStat

	for _, table := range cacheTables {
		stat, err := c.getTableStat(ctx, table)
		if err != nil {
			continue
		}
		stats = append(stats, *stat)
	}

	return stats, nil
}

func (c *Collector) getTableStat(ctx context.Context, tableName string) (*TableStat, error) {
	stat := &TableStat{Name: tableName}

	countQuery := "SELECT COUNT(*) FROM " + tableName
	var count int64
	err := c.db.GetContext(ctx, &count, countQuery)
	if err != nil {
		return nil, err
	}
	stat.RowCount = count

	if c.config.Type == config.DBTypePostgreSQL {
		sizeQuery := `SELECT COALESCE(pg_total_relation_size($1::regclass), 0)`
		var size int64
		err = c.db.GetContext(ctx, &size, sizeQuery, tableName)
		if err == nil {
			stat.SizeBytes = size
		}
	} else {
		// dbstat is only present when sqlite is built with SQLITE_ENABLE_DBSTAT_VTAB
		sizeQuery := `SELECT SUM(pgsize) FROM dbstat WHERE name = ?`
		var size int64
		_ = c.db.GetContext(ctx, &size, sizeQuery, tableName)
		stat.SizeBytes = size
	}

	return stat, nil
}

func (c *Collector) collectRuntimeStats() RuntimeStats {
	uptime := time.Since(c.startTime).Seconds()
	return RuntimeStats{
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		UptimeSeconds: int64(uptime),
	}
}
