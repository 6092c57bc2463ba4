package gdb

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config MySQL 连接配置
type Config struct {
	User            string `toml:"user" mapstructure:"user" json:"user" validate:"required"`
	Password        string `toml:"password" mapstructure:"password" json:"-"`
	Host            string `toml:"host" mapstructure:"host" json:"host" validate:"required"`
	Port            int    `toml:"port" mapstructure:"port" json:"port" validate:"required"`
	Database        string `toml:"database" mapstructure:"database" json:"database" validate:"required"`
	MaxIdleConns    int    `toml:"max_idle_conns" mapstructure:"max_idle_conns" json:"max_idle_conns"`
	MaxOpenConns    int    `toml:"max_open_conns" mapstructure:"max_open_conns" json:"max_open_conns"`
	MaxConnLifetime int    `toml:"max_conn_lifetime" mapstructure:"max_conn_lifetime" json:"max_conn_lifetime"` // 秒
	LogLevel        string `toml:"log_level" mapstructure:"log_level" json:"log_level"`                         // silent, error, warn, info
	AutoMigrate     bool   `toml:"auto_migrate" mapstructure:"auto_migrate" json:"auto_migrate"`                // 启动时自动建表
}

// DSN 拼接 go-sql-driver/mysql 的连接串
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// NewDB 创建 GORM 连接并设置连接池
func NewDB(c *Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(c.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(c.LogLevel)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open mysql")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed on get sql db")
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxConnLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(c.MaxConnLifetime) * time.Second)
	}

	return db, nil
}
