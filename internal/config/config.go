// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	Rabbit          `yaml:"rabbitmq"`
	Content         `yaml:"content"`
	Payments        `yaml:"payments"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage структура для выбора и настройки хранилища коллекций:
// bolt — встроенный файл bbolt, postgres — серверная база.
type Storage struct {
	Driver                  string `yaml:"driver" env-default:"bolt"`
	BoltPath                string `yaml:"bolt_path" env-default:"thegurutips.db"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// Rabbit структура для настройки подключения к RabbitMQ.
// Пустой URL отключает публикацию событий.
type Rabbit struct {
	URL          string        `yaml:"url"`
	Retries      int           `yaml:"retries" env-default:"5"`
	RetryTimeout time.Duration `yaml:"retry_timeout" env-default:"2s"`
}

// Content структура для настройки клиента витрины прогнозов
type Content struct {
	BaseURL  string        `yaml:"base_url" env-default:"https://victonictechnologies.github.io/thegurutips.com/"`
	Timeout  time.Duration `yaml:"timeout" env-default:"10s"`
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"1m"`
}

// Payments структура с реквизитами приёма оплаты
type Payments struct {
	TillNumber string `yaml:"till_number" env-default:"5204479"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH, при ошибке завершает процесс
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
