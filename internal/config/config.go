package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	// paseto v2 local token 需要 32 bytes key
	AuthTokenKeySize = 32
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取, 需要使用讀寫鎖
*/
var configSingleton *ConfigSingleton
var muOnce sync.Once

type ConfigSingleton struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	Env             string        `mapstructure:"ENV"`
	ServerPort      string        `mapstructure:"SERVER_PORT"`
	StoreDriver     string        `mapstructure:"STORE_DRIVER"`
	DbName          string        `mapstructure:"POSTGRES_DB"`
	DbHost          string        `mapstructure:"POSTGRES_HOST"`
	DbPort          string        `mapstructure:"POSTGRES_PORT"`
	DbUser          string        `mapstructure:"POSTGRES_USER"`
	DbPas           string        `mapstructure:"POSTGRES_PASSWORD"`
	MigrationURL    string        `mapstructure:"MIGRATION_URL"`
	SeedFile        string        `mapstructure:"SEED_FILE"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	RedisPoolSize   int           `mapstructure:"REDIS_POOL_SIZE"`
	OrderCacheTTL   time.Duration `mapstructure:"ORDER_CACHE_TTL"`
	KafkaBrokers    string        `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string        `mapstructure:"KAFKA_ORDER_TOPIC"`
	AuthTokenKey    string        `mapstructure:"AUTH_TOKEN_KEY"`

	// 下單限流, capacity 為 0 時關閉
	CheckoutRateCapacity int     `mapstructure:"CHECKOUT_RATE_CAPACITY"`
	CheckoutRatePerSec   float64 `mapstructure:"CHECKOUT_RATE_PER_SEC"`
}

var defaults = map[string]any{
	"ENV":               "development",
	"SERVER_PORT":       "8080",
	"STORE_DRIVER":      StoreDriverPostgres,
	"POSTGRES_DB":       "storefront",
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "",
	"MIGRATION_URL":     "file://internal/infra/repository/db/migrations",
	"SEED_FILE":         "",
	"REDIS_ADDR":        "",
	"REDIS_PASSWORD":    "",
	"REDIS_DB":          0,
	"REDIS_POOL_SIZE":   10,
	"ORDER_CACHE_TTL":   "5m",
	"KAFKA_BROKERS":     "",
	"KAFKA_ORDER_TOPIC": "storefront.orders",
	"AUTH_TOKEN_KEY":    "",

	"CHECKOUT_RATE_CAPACITY": 0,
	"CHECKOUT_RATE_PER_SEC":  1.0,
}

// DSN gorm postgres 連線字串
func (c *Config) DSN() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=disable", c.DbUser, c.DbPas, c.DbHost, c.DbPort, c.DbName)
}

// MigrationDSN golang-migrate 連線字串
func (c *Config) MigrationDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DbUser, c.DbPas, c.DbHost, c.DbPort, c.DbName)
}

func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if len(c.AuthTokenKey) != AuthTokenKeySize {
		return fmt.Errorf("AUTH_TOKEN_KEY must be %d bytes, got %d", AuthTokenKeySize, len(c.AuthTokenKey))
	}
	if c.OrderCacheTTL < 0 {
		return fmt.Errorf("ORDER_CACHE_TTL must not be negative")
	}
	if c.RedisPoolSize < 0 {
		return fmt.Errorf("REDIS_POOL_SIZE must not be negative")
	}
	if c.CheckoutRateCapacity < 0 {
		return fmt.Errorf("CHECKOUT_RATE_CAPACITY must not be negative")
	}
	if c.CheckoutRateCapacity > 0 && c.CheckoutRatePerSec <= 0 {
		return fmt.Errorf("CHECKOUT_RATE_PER_SEC must be positive when rate limit is enabled")
	}
	return nil
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muOnce.Do(func() {
		configSingleton = &ConfigSingleton{}
		v := viper.New()
		cf, err := loadConfig(v, configPath())
		if err != nil {
			log.Fatalf("error read config: %v", err)
		}
		configSingleton.Config = cf

		if _, err := os.Stat(v.ConfigFileUsed()); err != nil {
			return
		}
		v.OnConfigChange(func(e fsnotify.Event) {
			cf, err := readConfig(v)
			if err != nil {
				log.Printf("failed to reload config file %s: %v", e.Name, err)
				return
			}
			configSingleton.mu.Lock()
			configSingleton.Config = cf
			configSingleton.mu.Unlock()
		})
		v.WatchConfig()
	})
}

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return ".env"
}

// LoadConfig 讀取 .env 檔並以環境變數覆蓋, 檔案不存在時只使用環境變數與預設值
// 單純回傳錯誤, 由外部決定要不要Fatal
func LoadConfig(path string) (*Config, error) {
	return loadConfig(viper.New(), path)
}

func loadConfig(v *viper.Viper, path string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	return readConfig(v)
}

func readConfig(v *viper.Viper) (*Config, error) {
	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}
