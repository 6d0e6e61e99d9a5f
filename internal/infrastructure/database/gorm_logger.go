package database

import (
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/JoshCLWren/TrailGuard/pkg/logger"
)

// zapWriter routes gorm's printf-style output into the process logger.
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	logger.Info(format, args...)
}

func newGormLogger(level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(zapWriter{}, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
