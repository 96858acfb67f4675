package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig は HTTP API とヘルスチェック用 gRPC の待ち受けに関する設定です。
type ServerConfig struct {
	HTTPAddr           string        `yaml:"http_addr" env:"EMPLOYEE_DIRECTORY_HTTP_ADDR"`
	HealthAddr         string        `yaml:"health_addr" env:"EMPLOYEE_DIRECTORY_HEALTH_ADDR"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout" env:"EMPLOYEE_DIRECTORY_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host                 string        `yaml:"host" env:"EMPLOYEE_DIRECTORY_DB_HOST"`
	Port                 int           `yaml:"port" env:"EMPLOYEE_DIRECTORY_DB_PORT"`
	User                 string        `yaml:"user" env:"EMPLOYEE_DIRECTORY_DB_USER"`
	Password             string        `yaml:"password" env:"EMPLOYEE_DIRECTORY_DB_PASSWORD"`
	Name                 string        `yaml:"name" env:"EMPLOYEE_DIRECTORY_DB_NAME"`
	SSLMode              string        `yaml:"ssl_mode" env:"EMPLOYEE_DIRECTORY_DB_SSL_MODE"`
	ApplicationName      string        `yaml:"application_name"`
	MaxOpenConns         int           `yaml:"max_open_conns"`
	MaxIdleConns         int           `yaml:"max_idle_conns"`
	ConnMaxLifetime      time.Duration `yaml:"-"`
	ConnMaxIdleTime      time.Duration `yaml:"-"`
	HealthCheckPeriod    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw   string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw   string        `yaml:"conn_max_idle_time"`
	HealthCheckPeriodRaw string        `yaml:"health_check_period"`
}

// LogConfig は構造化ログの出力設定です。
type LogConfig struct {
	Level  string `yaml:"level" env:"EMPLOYEE_DIRECTORY_LOG_LEVEL"`
	Format string `yaml:"format" env:"EMPLOYEE_DIRECTORY_LOG_FORMAT"`
}

const (
	defaultShutdownTimeout = 10 * time.Second
	defaultHealthAddr      = ":50051"
)

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if err := c.Server.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	c.Log.normalize()
	return nil
}

func (s *ServerConfig) validateAndNormalize() error {
	if s.HTTPAddr == "" {
		return fmt.Errorf("config: server.http_addr must be set")
	}
	if _, _, err := net.SplitHostPort(s.HTTPAddr); err != nil {
		return fmt.Errorf("config: server.http_addr: %w", err)
	}
	if s.HealthAddr == "" {
		s.HealthAddr = defaultHealthAddr
	}
	if _, _, err := net.SplitHostPort(s.HealthAddr); err != nil {
		return fmt.Errorf("config: server.health_addr: %w", err)
	}

	timeout, err := parseDurationAllowEmpty(s.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}
	s.ShutdownTimeout = timeout
	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	healthCheck, err := parseDurationAllowEmpty(d.HealthCheckPeriodRaw)
	if err != nil {
		return fmt.Errorf("config: database.health_check_period: %w", err)
	}
	d.HealthCheckPeriod = healthCheck

	return nil
}

func (l *LogConfig) normalize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format == "" {
		l.Format = "json"
	}
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx / golang-migrate 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
