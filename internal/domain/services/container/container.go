package container

import (
	"sync"

	"gorm.io/gorm"

	"github.com/JoshCLWren/TrailGuard/internal/domain/services"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/config"
	"github.com/JoshCLWren/TrailGuard/internal/infrastructure/database"
	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// ServiceContainer wires every service to the shared pool, cache and notifier.
type ServiceContainer struct {
	pool   *database.ConnectionPool
	config *config.Config

	// infrastructure
	cacheService services.InterfaceCacheService
	sosNotifier  services.InterfaceSOSNotifier

	// domain
	userService       services.InterfaceUserService
	deviceService     services.InterfaceDeviceService
	breadcrumbService services.InterfaceBreadcrumbService
	checkInService    services.InterfaceCheckInService
	familyService     services.InterfaceFamilyService
	settingsService   services.InterfaceSettingsService
	sosService        services.InterfaceSOSService
	messageService    services.InterfaceMessageService

	mu sync.RWMutex
}

// NewServiceContainer builds the container. A nil cache or notifier is
// replaced by the one the config selects.
func NewServiceContainer(pool *database.ConnectionPool, cfg *config.Config, cache services.InterfaceCacheService, notifier services.InterfaceSOSNotifier) *ServiceContainer {
	if pool == nil {
		panic("database pool is nil")
	}

	if cfg == nil {
		panic("config is nil")
	}

	if cache == nil {
		cache = services.NewCacheService(cfg)
	}
	if notifier == nil {
		notifier = services.NewSOSNotifier(cfg)
	}

	container := &ServiceContainer{
		pool:         pool,
		config:       cfg,
		cacheService: cache,
		sosNotifier:  notifier,
	}
	container.initializeServices()
	return container
}

func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	db := c.pool.GetDB()
	c.userService = services.NewUserService(db, c.config)
	c.deviceService = services.NewDeviceService(db, c.config)
	c.breadcrumbService = services.NewBreadcrumbService(db, c.config)
	c.checkInService = services.NewCheckInService(db, c.config)
	c.familyService = services.NewFamilyService(db, c.config)
	c.settingsService = services.NewSettingsService(db, c.config, c.cacheService)
	c.sosService = services.NewSOSService(db, c.config, c.cacheService, c.sosNotifier)
	c.messageService = services.NewMessageService(db, c.config)
}

// GetService returns the service registered under name, or nil.
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.pool.GetDB()
	case "pool":
		return c.pool
	case "cache":
		return c.cacheService
	case "sos_notifier":
		return c.sosNotifier
	case "user":
		return c.userService
	case "device":
		return c.deviceService
	case "breadcrumb":
		return c.breadcrumbService
	case "checkin":
		return c.checkInService
	case "family":
		return c.familyService
	case "settings":
		return c.settingsService
	case "sos":
		return c.sosService
	case "message":
		return c.messageService
	default:
		return nil
	}
}

// GetDB returns the gorm handle.
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool.GetDB()
}

// GetPool returns the connection pool.
func (c *ServiceContainer) GetPool() *database.ConnectionPool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pool
}

// GetConfig returns the configuration.
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Close releases the notifier and the cache. The pool is owned by the caller.
func (c *ServiceContainer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sosNotifier.Close()
	if err := c.cacheService.Close(); err != nil {
		logger.Warning("close cache: %v", err)
	}
}
