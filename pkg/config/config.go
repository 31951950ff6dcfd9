package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Mail    MailConfig
	Storage StorageConfig
	URLs    URLConfig
	Log     LogConfig
	Migrate MigrateConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string `validate:"required"` // development, staging, production
	Name string
}

// IsProduction indica si la app corre en producción (oculta detalles de error).
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT (access + refresh).
type JWTConfig struct {
	Secret           string `validate:"required"`
	ExpiresIn        time.Duration
	RefreshSecret    string
	RefreshExpiresIn time.Duration
	Issuer           string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int `validate:"min=1,max=65535"`
	BodyLimitMB int `validate:"min=1"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit devuelve el límite del cuerpo en bytes.
func (c HTTPConfig) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

// MailConfig servidor SMTP para emails transaccionales.
type MailConfig struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
	From     string
}

// StorageConfig almacenamiento local de archivos subidos.
type StorageConfig struct {
	UploadDest string `validate:"required"`
	CDNURL     string `validate:"required,url"`
}

// URLConfig URLs públicas usadas en emails y exportaciones.
type URLConfig struct {
	BaseURL     string `validate:"required,url"`
	FrontendURL string `validate:"required,url"`
}

// LogConfig nivel de log y archivo rotativo opcional.
type LogConfig struct {
	Level      string `validate:"omitempty,oneof=trace debug info warn error"`
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// MigrateConfig controla las migraciones al arrancar.
type MigrateConfig struct {
	Auto bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, SMTP_HOST, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	accessTTL, err := ParseDuration(getString(v, "JWT_EXPIRES_IN", "3600s"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	refreshTTL, err := ParseDuration(getString(v, "JWT_REFRESH_EXPIRES_IN", "7d"))
	if err != nil {
		return nil, fmt.Errorf("JWT_REFRESH_EXPIRES_IN: %w", err)
	}

	port := getInt(v, "HTTP_PORT", 0)
	if port == 0 {
		port = getInt(v, "PORT", 3000)
	}
	secret := getString(v, "JWT_SECRET", "")
	env := getString(v, "APP_ENV", getString(v, "NODE_ENV", "development"))

	cfg := &Config{
		App: AppConfig{
			Env:  env,
			Name: getString(v, "APP_NAME", "encartes-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "encartes"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:           secret,
			ExpiresIn:        accessTTL,
			RefreshSecret:    getString(v, "JWT_REFRESH_SECRET", secret),
			RefreshExpiresIn: refreshTTL,
			Issuer:           getString(v, "JWT_ISSUER", "encartes-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        port,
			BodyLimitMB: getInt(v, "BODY_LIMIT_MB", 50),
		},
		Mail: MailConfig{
			Host:     getString(v, "SMTP_HOST", "smtp.mailtrap.io"),
			Port:     getInt(v, "SMTP_PORT", 587),
			Secure:   getBool(v, "SMTP_SECURE", false),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASS", ""),
			From:     getString(v, "MAIL_FROM", `"Encartes" <no-reply@encartes.local>`),
		},
		Storage: StorageConfig{
			UploadDest: getString(v, "UPLOAD_DEST", "./uploads"),
			CDNURL:     strings.TrimRight(getString(v, "CDN_URL", "http://localhost:3000/uploads"), "/"),
		},
		URLs: URLConfig{
			BaseURL:     strings.TrimRight(getString(v, "BASE_URL", "http://localhost:3003"), "/"),
			FrontendURL: strings.TrimRight(getString(v, "FRONTEND_URL", "http://localhost:8080"), "/"),
		},
		Log: LogConfig{
			Level:      getString(v, "LOG_LEVEL", "info"),
			File:       getString(v, "LOG_FILE", ""),
			MaxSizeMB:  getInt(v, "LOG_MAX_SIZE_MB", 100),
			MaxBackups: getInt(v, "LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getInt(v, "LOG_MAX_AGE_DAYS", 30),
		},
		Migrate: MigrateConfig{
			Auto: getBool(v, "AUTO_MIGRATE", false),
		},
	}

	return cfg, nil
}

// Validate verifica los campos obligatorios (JWT_SECRET, URLs, puertos).
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config: %s no cumple %q", f.Namespace(), f.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
