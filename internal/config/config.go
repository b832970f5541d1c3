package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	SessionFile        string
	MediaFolder        string
	RestrictMedia      bool
	DefaultGreeting    string
	CORSAllowedOrigins []string

	StoreDialect   string
	StoreDSN       string
	LogLevel       string
	WhatsAppLogLvl string

	SendTimeout     time.Duration
	ChatCacheTTL    time.Duration
	NativeAutoReply bool

	RabbitMQURL string

	MailHost     string
	MailPort     int
	MailUser     string
	MailPass     string
	MailFrom     string
	AlertEmailTo string
}

// Load lê o .env (se existir) e depois as variáveis de ambiente.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "5000"),
		SessionFile:        getEnv("SESSION_FILE", "./session.json"),
		MediaFolder:        getEnv("MEDIA_FOLDER", "./media"),
		RestrictMedia:      getBool("MEDIA_RESTRICT_TO_FOLDER", false),
		DefaultGreeting:    getEnv("DEFAULT_GREETING", "Olá, eu sou um BOT"),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		StoreDialect:   getEnv("WHATSAPP_STORE_DIALECT", "sqlite3"),
		StoreDSN:       getEnv("WHATSAPP_STORE_DSN", "file:whatsapp.db?_foreign_keys=on"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		WhatsAppLogLvl: getEnv("WHATSAPP_LOG_LEVEL", "warn"),

		SendTimeout:     getDuration("SEND_TIMEOUT", 0),
		ChatCacheTTL:    getDuration("CHAT_CACHE_TTL", 10*time.Minute),
		NativeAutoReply: getBool("NATIVE_AUTO_REPLY", false),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		MailHost:     os.Getenv("MAIL_HOST"),
		MailPort:     getInt("MAIL_PORT", 587),
		MailUser:     os.Getenv("MAIL_USER"),
		MailPass:     os.Getenv("MAIL_PASS"),
		MailFrom:     getEnv("MAIL_FROM", "nao-responda@whatsapp-bridge.local"),
		AlertEmailTo: os.Getenv("ALERT_EMAIL_TO"),
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && c.AlertEmailTo != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
