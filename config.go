package quill

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/quill/content"
	"github.com/eringen/quill/typography"
)

// Content sources selectable with the "source" key.
const (
	SourceFiles = "files"
	SourceIndex = "index"
)

// SiteConfig holds all configuration for a quill site.
type SiteConfig struct {
	Title       string            `mapstructure:"title" yaml:"title"`             // Site title (default "Blog")
	Description string            `mapstructure:"description" yaml:"description"` // For RSS and meta tags
	SiteURL     string            `mapstructure:"siteURL" yaml:"siteURL"`         // Canonical URL (default "http://localhost:3000")
	PathPrefix  string            `mapstructure:"pathPrefix" yaml:"pathPrefix"`   // Mount point below SiteURL, e.g. "/blog"
	Author      content.Author    `mapstructure:"author" yaml:"author"`
	Social      map[string]string `mapstructure:"social" yaml:"social"`
	SourceURL   string            `mapstructure:"sourceURL" yaml:"sourceURL"` // Linked from the footer

	Addr          string        `mapstructure:"addr" yaml:"addr"`             // Listen address (default ":3000")
	ContentDir    string        `mapstructure:"contentDir" yaml:"contentDir"` // Markdown posts (default "content/blog")
	StaticDir     string        `mapstructure:"staticDir" yaml:"staticDir"`   // Served under /public (default "public")
	OutputDir     string        `mapstructure:"outputDir" yaml:"outputDir"`   // Static build target (default "dist")
	Source        string        `mapstructure:"source" yaml:"source"`         // "files" or "index"
	IndexPath     string        `mapstructure:"indexPath" yaml:"indexPath"`   // SQLite content index (default "data/index.db")
	CacheTTL      time.Duration `mapstructure:"cacheTTL" yaml:"cacheTTL"`     // Post cache TTL (default 5m)
	ThumbnailSize int           `mapstructure:"thumbnailSize" yaml:"thumbnailSize"`
	LogFile       string        `mapstructure:"logFile" yaml:"logFile"`
	Debug         bool          `mapstructure:"debug" yaml:"debug"`

	Typography typography.Config `mapstructure:"typography" yaml:"typography"`
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "Blog"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Source == "" {
		c.Source = SourceFiles
	}
	if c.IndexPath == "" {
		c.IndexPath = "data/index.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.ThumbnailSize <= 0 {
		c.ThumbnailSize = 100
	}
	if c.Typography.BaseFontSize == 0 && c.Typography.ScaleRatio == 0 && c.Typography.BaseLineHeight == 0 {
		c.Typography = typography.DefaultConfig()
	}
}

// RootPath is the URL path of the home page: "/" or "/<prefix>/".
func (c SiteConfig) RootPath() string {
	p := strings.Trim(c.PathPrefix, "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}

// SiteMeta returns the site-wide metadata handed to the views.
func (c SiteConfig) SiteMeta() content.SiteMeta {
	return content.SiteMeta{
		Title:       c.Title,
		Description: c.Description,
		SiteURL:     c.SiteURL,
		Author:      c.Author,
		Social:      c.Social,
	}
}

// LoadConfig reads path (or ./config.yaml when path is empty) and applies
// QUILL_* environment overrides, e.g. QUILL_AUTHOR_NAME for author.name.
// A missing default config file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	setViperDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// setViperDefaults registers every key so AutomaticEnv can override it.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("title", "Blog")
	v.SetDefault("description", "")
	v.SetDefault("siteURL", "http://localhost:3000")
	v.SetDefault("pathPrefix", "")
	v.SetDefault("author.name", "")
	v.SetDefault("author.summary", "")
	v.SetDefault("author.avatar", "")
	v.SetDefault("sourceURL", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("contentDir", "content/blog")
	v.SetDefault("staticDir", "public")
	v.SetDefault("outputDir", "dist")
	v.SetDefault("source", SourceFiles)
	v.SetDefault("indexPath", "data/index.db")
	v.SetDefault("cacheTTL", 5*time.Minute)
	v.SetDefault("thumbnailSize", 100)
	v.SetDefault("logFile", "")
	v.SetDefault("debug", false)

	t := typography.DefaultConfig()
	v.SetDefault("typography.baseFontSize", t.BaseFontSize)
	v.SetDefault("typography.scaleRatio", t.ScaleRatio)
	v.SetDefault("typography.baseLineHeight", t.BaseLineHeight)
	v.SetDefault("typography.headerFontFamily", t.HeaderFontFamily)
	v.SetDefault("typography.bodyFontFamily", t.BodyFontFamily)
	v.SetDefault("typography.rhythmUnit", string(t.RhythmUnit))
	v.SetDefault("typography.minLinePadding", *t.MinLinePadding)
	v.SetDefault("typography.headerWeight", t.HeaderWeight)
	v.SetDefault("typography.bodyWeight", t.BodyWeight)
	v.SetDefault("typography.boldWeight", t.BoldWeight)
	v.SetDefault("typography.headerColor", t.HeaderColor)
	v.SetDefault("typography.bodyColor", t.BodyColor)
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides the directory served under /public.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithClock sets the function used for the footer year. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
