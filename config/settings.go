package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/rpupo63/portfolio-admin/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	defaultWorkBaseURL    = "https://api.work.spiderworks.org"
	defaultAccountBaseURL = "https://api.accounts.spiderworks.org"
	usersFetchPath        = "/api/user-auth/fetch-all"
)

type Settings struct {
	Backend struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"backend"`
	Source struct {
		ClientsURL   string `mapstructure:"clients_url"`
		ProjectsURL  string `mapstructure:"projects_url"`
		AuthBaseURL  string `mapstructure:"auth_base_url"`
		UsersURL     string `mapstructure:"users_url"`
		CountriesURL string `mapstructure:"countries_url"`
	} `mapstructure:"source"`
	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`
	Database struct {
		Enabled  bool   `mapstructure:"enabled"`
		Host     string `mapstructure:"host"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		Port     string `mapstructure:"port"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`
	Server struct {
		Port            string   `mapstructure:"port"`
		AcceptedOrigins []string `mapstructure:"accepted_origins"`
	} `mapstructure:"server"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

// envAliases lets the variable names of an existing .env keep working next
// to the derived SECTION_KEY names.
var envAliases = map[string][]string{
	"backend.base_url":        {"BACKEND_BASE_URL", "BASE_URL"},
	"source.auth_base_url":    {"SOURCE_AUTH_BASE_URL", "BASE_AUTH_URL"},
	"auth.jwt_secret":         {"AUTH_JWT_SECRET", "JWT_SECRET"},
	"database.host":           {"DATABASE_HOST", "SUPABASE_DB_HOST"},
	"database.user":           {"DATABASE_USER", "SUPABASE_DB_USER"},
	"database.password":       {"DATABASE_PASSWORD", "SUPABASE_DB_PASSWORD"},
	"database.name":           {"DATABASE_NAME", "SUPABASE_DB_NAME"},
	"database.port":           {"DATABASE_PORT", "SUPABASE_DB_PORT"},
	"server.port":             {"SERVER_PORT", "PORT"},
	"server.accepted_origins": {"SERVER_ACCEPTED_ORIGINS", "ACCEPTED_ORIGINS"},
	"logging.level":           {"LOGGING_LEVEL", "LOG_LEVEL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("source.clients_url", defaultWorkBaseURL+"/api/client")
	v.SetDefault("source.projects_url", defaultWorkBaseURL+"/api/projects")
	v.SetDefault("source.auth_base_url", defaultAccountBaseURL)
	v.SetDefault("source.users_url", "")
	v.SetDefault("source.countries_url", defaultAccountBaseURL+"/api/countries")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "require")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.accepted_origins", []string{"*"})
	v.SetDefault("logging.level", "info")
}

// Load reads .env, then the YAML file at cfgFile (or ./config.yaml when
// cfgFile is empty), then the environment. A missing file is not an error.
func Load(cfgFile string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, errs.NewConfigError(key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			log.Debug().Msg("no config file found, using defaults and environment")
		case cfgFile != "" && errors.Is(err, os.ErrNotExist):
			log.Warn().Str("path", cfgFile).Msg("config file not found, using defaults and environment")
		default:
			return nil, errs.NewConfigError(v.ConfigFileUsed(), err)
		}
	} else {
		log.Debug().Str("path", v.ConfigFileUsed()).Msg("using config file")
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errs.NewConfigError("settings", fmt.Errorf("unable to decode config into struct: %w", err))
	}
	if s.Source.UsersURL == "" {
		s.Source.UsersURL = strings.TrimSuffix(s.Source.AuthBaseURL, "/") + usersFetchPath
	}
	s.Server.AcceptedOrigins = splitOrigins(s.Server.AcceptedOrigins)
	return &s, nil
}

// splitOrigins accepts both a YAML list and a single comma separated
// environment value.
func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

// Validate reports the first setting a command cannot run without.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Backend.BaseURL) == "" {
		return errs.NewConfigError("backend.base_url", errors.New("BASE_URL is not set"))
	}
	if s.Database.Enabled && s.Database.Host == "" {
		return errs.NewConfigError("database.host", errors.New("database is enabled but no host is set"))
	}
	return nil
}

func (s *Settings) SourceURLs() services.SourceURLs {
	return services.SourceURLs{
		Clients:   s.Source.ClientsURL,
		Projects:  s.Source.ProjectsURL,
		Users:     s.Source.UsersURL,
		Countries: s.Source.CountriesURL,
	}
}

// DSN builds the postgres connection string for the sync journal.
func (s *Settings) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		s.Database.Host, s.Database.User, s.Database.Password,
		s.Database.Name, s.Database.Port, s.Database.SSLMode)
}
