package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port int
	}
	Database struct {
		Driver string // "sqlite" or "postgres"
		URL    string
		Path   string
	}
	Site struct {
		Name        string
		Description string
		BaseURL     string
		Locale      string
		Currency    string
	}
	Sitemap struct {
		Kinds          []string
		OrderBy        string
		OrderDirection string
		CacheTTL       string
		ContentType    string
	}
	Importer struct {
		UserAgent      string
		MaxDepth       int
		AllowedDomains []string
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.path", "sitemap.db")
	viper.SetDefault("site.name", "Schema Sitemap")
	viper.SetDefault("site.baseurl", "http://localhost:8080")
	viper.SetDefault("site.locale", "en-US")
	viper.SetDefault("site.currency", "USD")
	viper.SetDefault("sitemap.kinds", []string{"post", "page"})
	viper.SetDefault("sitemap.orderby", "menu_order")
	viper.SetDefault("sitemap.orderdirection", "asc")
	viper.SetDefault("sitemap.cachettl", "6h")
	viper.SetDefault("sitemap.contenttype", "application/ld+json")
	viper.SetDefault("importer.useragent", "Schema Sitemap Importer v1.0")
	viper.SetDefault("importer.maxdepth", 2)

	if err := viper.ReadInConfig(); err != nil {
		// Defaults cover every key, so a missing file is not fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) GetCacheTTL() time.Duration {
	ttl, err := time.ParseDuration(c.Sitemap.CacheTTL)
	if err != nil {
		return 6 * time.Hour
	}
	return ttl
}
