package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/colegioelo/estoque/internal/importer/siga"
)

const dateLayout = "02/01/2006"

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Estoque"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Port         int    `envconfig:"DB_PORT" default:"5432"`
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:""`
		Name         string `envconfig:"DB_NAME" default:"estoque"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	SIS struct {
		URL         string `envconfig:"SIS_URL" default:"https://siga02.activesoft.com.br"`
		Institution string `envconfig:"SIS_INSTITUTION"`
		Login       string `envconfig:"SIS_LOGIN"`
		Password    string `envconfig:"SIS_PASSWORD"`
		// StartDate is the first settlement date fetched, as DD/MM/YYYY.
		StartDate  string        `envconfig:"SIS_START_DATE" default:"01/08/2025"`
		PageSize   int           `envconfig:"SIS_PAGE_SIZE" default:"500"`
		Workers    int           `envconfig:"SIS_WORKERS" default:"4"`
		Timeout    time.Duration `envconfig:"SIS_TIMEOUT" default:"60s"`
		Retries    int           `envconfig:"SIS_RETRIES" default:"3"`
		RetryDelay time.Duration `envconfig:"SIS_RETRY_DELAY" default:"2s"`
	}

	Report struct {
		CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
		ExportDir   string   `envconfig:"EXPORT_DIR" default:"exports"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// SISEnabled reports whether credentials for the SIS API were provided.
func (c *Config) SISEnabled() bool {
	return c.SIS.Institution != "" && c.SIS.Login != "" && c.SIS.Password != ""
}

// SISClient returns the SIS client settings.
func (c *Config) SISClient() (siga.Config, error) {
	start, err := time.Parse(dateLayout, strings.TrimSpace(c.SIS.StartDate))
	if err != nil {
		return siga.Config{}, fmt.Errorf("parse SIS_START_DATE: %w", err)
	}

	return siga.Config{
		BaseURL:     c.SIS.URL,
		Institution: c.SIS.Institution,
		Login:       c.SIS.Login,
		Password:    c.SIS.Password,
		StartDate:   start,
		PageSize:    c.SIS.PageSize,
		Retries:     c.SIS.Retries,
		Timeout:     c.SIS.Timeout,
		RetryDelay:  c.SIS.RetryDelay,
		Workers:     c.SIS.Workers,
	}, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
