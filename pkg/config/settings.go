package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/FunnySam/runelite/pkg/errors"
)

const (
	// AppName names the configuration directory.
	AppName = "overlayctl"

	// DefaultSettingsFile holds Settings inside DefaultDir.
	DefaultSettingsFile = "config.toml"

	// DefaultStoreFile holds the FileBackend document inside DefaultDir.
	DefaultStoreFile = "settings.toml"

	DefaultMongoDatabase   = "overlayctl"
	DefaultMongoCollection = "configuration"
	DefaultRedisPrefix     = "overlayctl:"
)

// Backend kinds accepted in Settings.Backend.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendNull   = "null"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvBackend   = "OVERLAYCTL_BACKEND"
	EnvProfile   = "OVERLAYCTL_PROFILE"
	EnvRedisAddr = "OVERLAYCTL_REDIS_ADDR"
	EnvMongoURI  = "OVERLAYCTL_MONGO_URI"
)

// Settings selects and configures the configuration backend.
//
//	backend = "redis"
//	profile = "5f0c6d1e-8a0b-4a53-9d1e-0b2a3c4d5e6f"
//	timeout = "500ms"
//
//	[redis]
//	addr = "localhost:6379"
type Settings struct {
	Backend string        `toml:"backend"`
	Profile string        `toml:"profile"`
	Timeout time.Duration `toml:"timeout"`

	File  FileSettings  `toml:"file"`
	Redis RedisSettings `toml:"redis"`
	Mongo MongoSettings `toml:"mongo"`
}

type FileSettings struct {
	Path string `toml:"path"`
}

type RedisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type MongoSettings struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultSettings stores placement in a TOML file under DefaultDir.
func DefaultSettings() Settings {
	return Settings{
		Backend: BackendFile,
		Timeout: DefaultTimeout,
		Redis:   RedisSettings{Addr: "localhost:6379", Prefix: DefaultRedisPrefix},
		Mongo: MongoSettings{
			URI:        "mongodb://localhost:27017",
			Database:   DefaultMongoDatabase,
			Collection: DefaultMongoCollection,
		},
	}
}

// DefaultDir returns the configuration directory using the XDG standard
// (~/.config/overlayctl/).
func DefaultDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "get home dir")
	}
	return filepath.Join(home, ".config", AppName), nil
}

// LoadSettings reads Settings from path on top of DefaultSettings. A missing
// file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	md, err := toml.DecodeFile(path, &s)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return s, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown settings in %s: %s", path, strings.Join(keys, ", "))
	}
	return s, nil
}

// ApplyEnv overrides settings from the OVERLAYCTL_* environment variables.
func (s *Settings) ApplyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		s.Backend = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		s.Profile = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		s.Redis.Addr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		s.Mongo.URI = v
	}
}

// Validate checks the settings for the selected backend only.
func (s Settings) Validate() error {
	if s.Timeout < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "timeout must not be negative")
	}
	if s.Profile != "" {
		if err := ValidateProfileID(s.Profile); err != nil {
			return err
		}
	}

	switch s.Backend {
	case BackendFile, BackendMemory, BackendNull:
		return nil
	case BackendRedis:
		if err := apperrors.ValidateAddr(s.Redis.Addr); err != nil {
			return err
		}
		if s.Redis.DB < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "redis db must not be negative, got %d", s.Redis.DB)
		}
		return nil
	case BackendMongo:
		return apperrors.ValidateMongoURI(s.Mongo.URI)
	default:
		return apperrors.New(apperrors.ErrCodeInvalidBackend, "unknown backend %q (want file, memory, null, redis or mongo)", s.Backend)
	}
}

// Open validates s and opens the selected backend, scoped to s.Profile when set.
func Open(ctx context.Context, s Settings) (Backend, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var (
		b   Backend
		err error
	)
	switch s.Backend {
	case BackendFile:
		b, err = NewFileBackend(s.File.Path)
	case BackendMemory:
		b = NewMemoryBackend()
	case BackendNull:
		b = NewNullBackend()
	case BackendRedis:
		b, err = NewRedisBackend(ctx, RedisOptions{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
			Prefix:   s.Redis.Prefix,
		})
	case BackendMongo:
		b, err = NewMongoBackend(ctx, MongoOptions{
			URI:        s.Mongo.URI,
			Database:   s.Mongo.Database,
			Collection: s.Mongo.Collection,
		})
	}
	if err != nil {
		return nil, err
	}

	if s.Profile != "" {
		b = NewScopedBackend(b, s.Profile)
	}
	return b, nil
}
