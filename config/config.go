package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database      DatabaseConfigs
	ApiServer     APIServerConfigs
	WsProxyServer ServerConfigs
	SearchServer  SearchConfigs
	Auth          AuthConfigs
	Redis         RedisConfigs
	Kafka         KafkaConfigs
	Challenge     ChallengeConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host      string
	Port      string
	AllowCORS []string
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	MaxLimit     int
	DefaultLimit int
}

type SearchConfigs struct {
	IndexDir string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type ChallengeConfigs struct {
	// LeadTime is how long after generation the first challenge opens.
	// The generator snaps the open instant to the next midnight plus
	// this offset's whole days.
	LeadTime time.Duration

	// Duration is the length of every challenge window.
	Duration time.Duration

	// StaggerDays shifts the start of the i-th generated challenge by
	// i*StaggerDays days.
	StaggerDays int

	MaxTypesPerEvent int

	IndividualCap int
	TeamCap       int

	BasePoints uint64

	// TemplatePath optionally points to a TOML file overriding the
	// built-in sport/template tables.
	TemplatePath string

	FeaturedCacheTTL time.Duration
}
