package database

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// ConnectionPool wraps the gorm handle and its pool settings.
type ConnectionPool struct {
	DB              *gorm.DB
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Options for opening a pool directly, bypassing the process config.
type Options struct {
	Driver       string
	DSN          string
	MaxIdleConns int
	MaxOpenConns int
	LogLevel     gormlogger.LogLevel
}

// NewConnectionPool opens the database named by cfg.
func NewConnectionPool(cfg *config.Config) (*ConnectionPool, error) {
	return Open(Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.GetDSN(),
		MaxIdleConns: cfg.DBMaxIdleConns,
		MaxOpenConns: cfg.DBMaxOpenConns,
		LogLevel:     gormlogger.Warn,
	})
}

// Open connects with opts and configures the pool.
func Open(opts Options) (*ConnectionPool, error) {
	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = gormlogger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(opts.LogLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}

	pool := &ConnectionPool{
		DB:              db,
		Driver:          normalizeDriver(opts.Driver),
		DSN:             opts.DSN,
		MaxIdleConns:    orDefault(opts.MaxIdleConns, 10),
		MaxOpenConns:    orDefault(opts.MaxOpenConns, 100),
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}

	if err := pool.ConfigurePool(); err != nil {
		return nil, err
	}
	return pool, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch normalizeDriver(driver) {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite
	case "postgresql", "pgx":
		return DriverPostgres
	default:
		return strings.ToLower(driver)
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// ConfigurePool applies the pool settings and pings the database.
func (p *ConnectionPool) ConfigurePool() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(p.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}

	logger.Info("database pool configured: driver=%s maxIdle=%d maxOpen=%d", p.Driver, p.MaxIdleConns, p.MaxOpenConns)
	return nil
}

// UpdatePoolConfig changes the pool settings at runtime.
func (p *ConnectionPool) UpdatePoolConfig(maxIdle, maxOpen int, maxLifetime, maxIdleTime time.Duration) error {
	p.MaxIdleConns = maxIdle
	p.MaxOpenConns = maxOpen
	p.ConnMaxLifetime = maxLifetime
	p.ConnMaxIdleTime = maxIdleTime

	return p.ConfigurePool()
}

// Stats reports database/sql pool counters.
func (p *ConnectionPool) Stats() (map[string]interface{}, error) {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return nil, err
	}

	stats := sqlDB.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}, nil
}

// Close closes the underlying connections.
func (p *ConnectionPool) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// WithTransaction runs fn in a transaction bound to ctx.
func (p *ConnectionPool) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return p.DB.WithContext(ctx).Transaction(fn)
}

// HealthCheck runs SELECT 1 with a short deadline.
func (p *ConnectionPool) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var one int
	return p.DB.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

// GetDB returns the gorm handle.
func (p *ConnectionPool) GetDB() *gorm.DB {
	return p.DB
}

// Info describes the connection for the /db endpoint.
type Info struct {
	URL     string  `json:"url" example:"postgres://trail:***@db:5432/trailguard"`
	Backend string  `json:"backend" example:"postgresql"`
	Driver  string  `json:"driver" example:"postgres"`
	OK      bool    `json:"ok" example:"true"`
	Error   *string `json:"error"`
}

// Info pings the database and reports the masked URL.
func (p *ConnectionPool) Info(ctx context.Context) Info {
	info := Info{
		URL:     MaskDSN(p.DSN),
		Backend: p.DB.Dialector.Name(),
		Driver:  p.Driver,
	}
	if err := p.HealthCheck(ctx); err != nil {
		msg := err.Error()
		info.Error = &msg
		return info
	}
	info.OK = true
	return info
}

var (
	mysqlPassword = regexp.MustCompile(`^([^:@/]+):([^@]*)@`)
	kvPassword    = regexp.MustCompile(`(password=)(\S+)`)
)

// MaskDSN replaces any password in dsn with ***.
func MaskDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "xxx")
			return strings.Replace(u.String(), ":xxx@", ":***@", 1)
		}
		return dsn
	}
	if kvPassword.MatchString(dsn) {
		return kvPassword.ReplaceAllString(dsn, "${1}***")
	}
	return mysqlPassword.ReplaceAllString(dsn, "${1}:***@")
}
