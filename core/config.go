package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendLocal      = "local"
	BackendProduction = "production"

	localBaseURL      = "http://localhost:8000/api"
	productionBaseURL = "https://federation-backend.onrender.com/api"
)

type (
	BackendConfig struct {
		Environment     string // local | production
		OverrideBaseURL string
		Timeout         time.Duration
		AccessToken     string // admin CLI session
	}

	ServerConfig struct {
		Addr                      string
		Host                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		AllowedOrigins            []string
	}

	DatabaseConfig struct {
		Enabled    bool
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	RedisConfig struct {
		URL       string
		LeagueTTL time.Duration
	}

	EmailConfig struct {
		SendgridAPIKey   string
		DefaultFromEmail string
		NotifyRecipients []string
	}

	Config struct {
		Env          string
		AppName      string
		SecretKey    string
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		WorkDir      string

		Backend  BackendConfig
		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Email    EmailConfig
	}
)

// BaseURL returns the REST backend root, resolved once from the environment selector.
func (c BackendConfig) BaseURL() string {
	if u := strings.TrimSpace(c.OverrideBaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	if c.Environment == BackendProduction {
		return productionBaseURL
	}
	return localBaseURL
}

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// NewConfig loads the configuration from defaults, `config/.env.<env>` and the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Arbitres")
	conf.SetDefault("secretKey", "k2v!r9-tq$3w)ehm8=xb&zpl1(u@c7f#d0(s^a6_j4n%yg5o")
	conf.SetDefault("build", "develop")

	conf.SetDefault("backend.environment", BackendLocal)
	conf.SetDefault("backend.overrideBaseURL", "")
	conf.SetDefault("backend.timeout", 15*time.Second)
	conf.SetDefault("backend.accessToken", "")

	conf.SetDefault("server.addr", ":8080")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.jwtExpirationDelta", 24*time.Hour)
	conf.SetDefault("server.jwtRefreshExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("server.allowedOrigins", []string{"http://localhost:5173"})

	conf.SetDefault("database.enabled", false)
	conf.SetDefault("database.engine", "postgres")
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "arbitres")
	conf.SetDefault("database.user", "postgres")
	conf.SetDefault("database.password", "")
	conf.SetDefault("database.disableTLS", true)

	conf.SetDefault("redis.url", "")
	conf.SetDefault("redis.leagueTTL", 6*time.Hour)

	conf.SetDefault("email.sendgridApiKey", "")
	conf.SetDefault("email.defaultFromEmail", "noreply@localhost")
	conf.SetDefault("email.notifyRecipients", []string{})

	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		RollbarToken: conf.GetString("rollbarToken"),
		WorkDir:      wd,
		Backend: BackendConfig{
			Environment:     strings.ToLower(conf.GetString("backend.environment")),
			OverrideBaseURL: conf.GetString("backend.overrideBaseURL"),
			Timeout:         conf.GetDuration("backend.timeout"),
			AccessToken:     conf.GetString("backend.accessToken"),
		},
		Server: ServerConfig{
			Addr:                      conf.GetString("server.addr"),
			Host:                      conf.GetString("server.host"),
			DebugHost:                 conf.GetString("server.debugHost"),
			ShutdownTimeout:           conf.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta:        conf.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("server.jwtRefreshExpirationDelta"),
			AllowedOrigins:            conf.GetStringSlice("server.allowedOrigins"),
		},
		Database: DatabaseConfig{
			Enabled:    conf.GetBool("database.enabled"),
			Engine:     conf.GetString("database.engine"),
			Host:       conf.GetString("database.host"),
			Port:       conf.GetString("database.port"),
			Name:       conf.GetString("database.name"),
			User:       conf.GetString("database.user"),
			Password:   conf.GetString("database.password"),
			DisableTLS: conf.GetBool("database.disableTLS"),
		},
		Redis: RedisConfig{
			URL:       conf.GetString("redis.url"),
			LeagueTTL: conf.GetDuration("redis.leagueTTL"),
		},
		Email: EmailConfig{
			SendgridAPIKey:   conf.GetString("email.sendgridApiKey"),
			DefaultFromEmail: conf.GetString("email.defaultFromEmail"),
			NotifyRecipients: conf.GetStringSlice("email.notifyRecipients"),
		},
	}
}
