package configs

import (
	"fmt"
	"time"

	"github.com/Rakhulsr/go-catalog/app/logger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const retryDelay = 5 * time.Second

func DSN(env ENV) string {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.DBUser,
		env.DBPassword,
		env.DBHost,
		env.DBPort,
		env.DBName,
	)
	if env.DBSSL {
		dsn += "&tls=true"
	}
	return dsn
}

func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.Get(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func OpenConnection(env ENV) (*gorm.DB, error) {
	log := logger.Get()
	dsn := DSN(env)

	retries := env.DBConnectRetries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		log.Infof("Attempting to connect to database %s@%s:%s (attempt %d/%d)", env.DBName, env.DBHost, env.DBPort, i+1, retries)
		db, err := gorm.Open(mysql.Open(dsn), GormConfig())
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				sqlDB.SetMaxOpenConns(env.DBMaxOpenConns)
				sqlDB.SetMaxIdleConns(env.DBMaxIdleConns)
				sqlDB.SetConnMaxLifetime(env.DBConnMaxLifetime)
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Info("Database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Warnf("Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			log.Warnf("Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		if i < retries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d attempts: %w", retries, lastErr)
}
