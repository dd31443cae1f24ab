package config

import "time"

// Config is the top-level site configuration, corresponding to folio.yml.
type Config struct {
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Content ContentConfig `yaml:"content" koanf:"content"`
	Contact ContactConfig `yaml:"contact" koanf:"contact"`
	Store   StoreConfig   `yaml:"store" koanf:"store"`
	Site    SiteConfig    `yaml:"site" koanf:"site"`
	Deploy  DeployConfig  `yaml:"deploy" koanf:"deploy"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// ContentConfig points at the project and blog fixtures.
type ContentConfig struct {
	ProjectsFile string `yaml:"projects_file" koanf:"projects_file"`
	BlogsFile    string `yaml:"blogs_file" koanf:"blogs_file"`
	PreviewCount int    `yaml:"preview_count" koanf:"preview_count"`
}

// ContactConfig configures the form-handling relay.
type ContactConfig struct {
	Endpoint      string        `yaml:"endpoint" koanf:"endpoint"`
	Timeout       time.Duration `yaml:"timeout" koanf:"timeout"`
	FallbackEmail string        `yaml:"fallback_email" koanf:"fallback_email"`
	HashSalt      string        `yaml:"hash_salt" koanf:"hash_salt"`
}

// StoreConfig locates the submission database.
type StoreConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// SiteConfig holds page metadata and static build settings.
type SiteConfig struct {
	Title     string   `yaml:"title" koanf:"title"`
	Author    string   `yaml:"author" koanf:"author"`
	Tagline   string   `yaml:"tagline" koanf:"tagline"`
	BaseURL   string   `yaml:"base_url" koanf:"base_url"`
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	AssetsDir string   `yaml:"assets_dir" koanf:"assets_dir"`
	Include   []string `yaml:"include" koanf:"include"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`
}

// DeployConfig holds S3 publishing settings.
type DeployConfig struct {
	Bucket       string `yaml:"bucket" koanf:"bucket"`
	Prefix       string `yaml:"prefix" koanf:"prefix"`
	Region       string `yaml:"region" koanf:"region"`
	CacheControl string `yaml:"cache_control" koanf:"cache_control"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Content: ContentConfig{
			ProjectsFile: "data/projects.json",
			BlogsFile:    "data/blogs.json",
			PreviewCount: 3,
		},
		Contact: ContactConfig{
			Endpoint: "https://formspree.io/f/your-form-id",
			Timeout:  10 * time.Second,
		},
		Store: StoreConfig{
			Path: "data/store",
		},
		Site: SiteConfig{
			Title:     "Portfolio",
			OutputDir: "public",
			Include:   []string{"**/*"},
			Exclude:   []string{"**/.*", "**/*.tmp"},
		},
		Deploy: DeployConfig{
			CacheControl: "public, max-age=300",
		},
	}
}
