package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI                   string `mapstructure:"uri"`
	Database              string `mapstructure:"database"`
	Collection            string `mapstructure:"collection"`
	ConnectTimeoutSeconds int    `mapstructure:"connect_timeout_seconds"`
}

type AuthConf struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	BcryptCost int    `mapstructure:"bcrypt_cost"`
}

type AvatarConf struct {
	Backend     string `mapstructure:"backend"` // disk | s3
	Dir         string `mapstructure:"dir"`
	ResizeWidth int    `mapstructure:"resize_width"`
}

type AWSConf struct {
	Region string `mapstructure:"region"`
	Bucket string `mapstructure:"bucket"`
}

type RedisConf struct {
	Addr               string `mapstructure:"addr"`
	Password           string `mapstructure:"password"`
	DB                 int    `mapstructure:"db"`
	LoginLimit         int    `mapstructure:"login_limit"`
	LoginWindowSeconds int    `mapstructure:"login_window_seconds"`
	DialTimeoutSeconds int    `mapstructure:"dial_timeout_seconds"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	App    AppConf    `mapstructure:"app"`
	Mongo  MongoConf  `mapstructure:"mongodb"`
	Auth   AuthConf   `mapstructure:"auth"`
	Avatar AvatarConf `mapstructure:"avatar"`
	AWS    AWSConf    `mapstructure:"aws"`
	Redis  RedisConf  `mapstructure:"redis"`
	Kafka  KafkaConf  `mapstructure:"kafka"`

	// derived
	ShutdownTimeout     time.Duration
	LoginWindow         time.Duration
	MongoConnectTimeout time.Duration
	RedisDialTimeout    time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("mongodb.database", "accounts")
	v.SetDefault("mongodb.collection", "users")
	v.SetDefault("mongodb.connect_timeout_seconds", 15)
	v.SetDefault("redis.dial_timeout_seconds", 5)
	v.SetDefault("avatar.backend", "disk")
	v.SetDefault("avatar.dir", "avatar")
	v.SetDefault("avatar.resize_width", 250)
	v.SetDefault("redis.login_limit", 10)
	v.SetDefault("redis.login_window_seconds", 60)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// env-first secrets
	if s := v.GetString("JWT_SECRET"); s != "" {
		cfg.Auth.JWTSecret = s
	}
	if s := v.GetString("MONGO_URI"); s != "" {
		cfg.Mongo.URI = s
	}
	if s := v.GetString("REDIS_ADDR"); s != "" {
		cfg.Redis.Addr = s
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required (set in .env or config.yaml)")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if cfg.Avatar.Backend == "s3" && cfg.AWS.Bucket == "" {
		return nil, errors.New("aws.bucket is required when avatar.backend is s3")
	}

	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.LoginWindow = time.Duration(cfg.Redis.LoginWindowSeconds) * time.Second
	cfg.MongoConnectTimeout = time.Duration(cfg.Mongo.ConnectTimeoutSeconds) * time.Second
	cfg.RedisDialTimeout = time.Duration(cfg.Redis.DialTimeoutSeconds) * time.Second
	return &cfg, nil
}
