package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Storage   StorageConfigs
	File      FileConfigs
	Cache     CacheConfigs
	Redis     RedisConfigs
}

type DatabaseConfigs struct {
	// Driver is one of mysql or sqlite.
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// SqlitePath is only used by the sqlite driver.
	SqlitePath string
	LogLevel   string
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
	Host string
	Port string
	Cert string
	Key  string
}

func (c ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type APIServerConfigs struct {
	ServerConfigs

	// PageSize is the number of posts on every listing page.
	PageSize    int
	AllowOrigin []string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs

	// LoginURL is where anonymous users are redirected to before a write
	// action. The original path is appended as the next parameter.
	LoginURL string
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type StorageConfigs struct {
	// Backend is one of s3 or local.
	Backend string
	S3      S3Configs
	Local   LocalStorageConfigs
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type LocalStorageConfigs struct {
	Root      string
	URLPrefix string
}

type FileConfigs struct {
	// MaxSize is in megabytes.
	MaxSize int

	// MaxImageWidth is the width an uploaded image is downscaled to.
	MaxImageWidth uint
}

type CacheConfigs struct {
	// Backend is one of memory or redis.
	Backend  string
	IndexTTL time.Duration
}

type RedisConfigs struct {
	Addr string
}
