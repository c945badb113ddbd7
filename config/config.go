package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/brequin/brequin/soc/catalog"
	"github.com/brequin/brequin/soc/rating"
	"github.com/brequin/brequin/soc/soc"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"

	ModeIndex = "index"
	ModeLive  = "live"
)

// Config is shared by every binary. Each one reads the sections it needs.
type Config struct {
	Schedule struct {
		SearchUrl   string        `yaml:"search_url" env:"SOC_SEARCH_URL"`
		ResultsUrl  string        `yaml:"results_url" env:"SOC_RESULTS_URL"`
		Term        string        `yaml:"term" env:"SOC_TERM"`
		Subjects    []string      `yaml:"subjects" env:"SOC_SUBJECTS,padded"`
		PageTimeout time.Duration `yaml:"page_timeout" env:"SOC_PAGE_TIMEOUT"`
		UserAgent   string        `yaml:"user_agent" env:"SOC_USER_AGENT"`
	} `yaml:"schedule"`

	Output struct {
		Raw      string `yaml:"raw" env:"OUTPUT_RAW"`
		Enriched string `yaml:"enriched" env:"OUTPUT_ENRICHED"`
		Indent   bool   `yaml:"indent" env:"OUTPUT_INDENT"`
	} `yaml:"output"`

	Ratings struct {
		Source             string                   `yaml:"source" env:"RATINGS_SOURCE"`
		Mode               string                   `yaml:"mode" env:"RATINGS_MODE"`
		Snapshot           string                   `yaml:"snapshot" env:"RATINGS_SNAPSHOT"`
		Throttle           time.Duration            `yaml:"throttle" env:"RATINGS_THROTTLE"`
		Fallback           string                   `yaml:"fallback" env:"RATINGS_FALLBACK"`
		Aggregate          bool                     `yaml:"aggregate" env:"RATINGS_AGGREGATE"`
		DepartmentKeywords []string                 `yaml:"department_keywords" env:"RATINGS_DEPARTMENT_KEYWORDS"`
		Mapping            rating.DepartmentMapping `yaml:"mapping"`
	} `yaml:"ratings"`

	Database struct {
		ConnectionString string `yaml:"connection_string" env:"DATABASE_CONNECTION_STRING"`
	} `yaml:"database"`

	Logging struct {
		Mode string `yaml:"mode" env:"LOG_MODE"`
	} `yaml:"logging"`

	Server struct {
		Address string `yaml:"address" env:"SERVER_ADDRESS"`
		Mode    string `yaml:"mode" env:"GIN_MODE"`
	} `yaml:"server"`
}

// LoadConfig builds the configuration from defaults, then the YAML file at
// configPath if it exists, then environment variables (including a .env
// file in the working directory).
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv never overrides variables that are already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

func setDefaults(config *Config) {
	config.Schedule.SearchUrl = soc.DefaultSearchUrl
	config.Schedule.ResultsUrl = soc.DefaultResultsUrl
	config.Schedule.PageTimeout = catalog.DefaultPageTimeout
	config.Schedule.UserAgent = "Mozilla/5.0 (compatible; soc-scraper)"

	config.Output.Raw = "classes.json"
	config.Output.Enriched = "classes_enriched.json"
	config.Output.Indent = true

	config.Ratings.Source = SourceFile
	config.Ratings.Mode = ModeIndex
	config.Ratings.Snapshot = "professors.json"
	config.Ratings.Throttle = 500 * time.Millisecond
	config.Ratings.Fallback = string(rating.FallbackFirst)
	config.Ratings.Aggregate = true
	config.Ratings.DepartmentKeywords = []string{"computer science", "mathematics", "electrical engineering"}
	config.Ratings.Mapping = rating.DefaultDepartmentMapping()

	config.Logging.Mode = "development"

	config.Server.Address = ":8080"
	config.Server.Mode = "release"
}

func validateConfig(config *Config) error {
	if config.Schedule.ResultsUrl == "" {
		return fmt.Errorf("schedule results url is required")
	}
	if config.Schedule.PageTimeout <= 0 {
		return fmt.Errorf("page timeout must be positive, got %v", config.Schedule.PageTimeout)
	}

	switch config.Ratings.Source {
	case SourceFile:
		if config.Ratings.Snapshot == "" {
			return fmt.Errorf("ratings snapshot is required for the file source")
		}
	case SourcePostgres:
		if config.Database.ConnectionString == "" {
			return fmt.Errorf("database connection string is required for the postgres source")
		}
	default:
		return fmt.Errorf("unknown ratings source %q", config.Ratings.Source)
	}

	switch config.Ratings.Mode {
	case ModeIndex:
	case ModeLive:
		if config.Ratings.Source != SourcePostgres {
			return fmt.Errorf("live ratings mode needs the postgres source")
		}
	default:
		return fmt.Errorf("unknown ratings mode %q", config.Ratings.Mode)
	}

	if config.Ratings.Throttle < 0 {
		return fmt.Errorf("throttle must not be negative, got %v", config.Ratings.Throttle)
	}
	if _, err := rating.ParseFallbackPolicy(config.Ratings.Fallback); err != nil {
		return err
	}
	switch config.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", config.Server.Mode)
	}
	for i, entry := range config.Ratings.Mapping {
		if entry.Name == "" || len(entry.Codes) == 0 {
			return fmt.Errorf("mapping entry %d needs a name and at least one code", i)
		}
	}

	return nil
}

// FallbackPolicy is only valid after LoadConfig has validated the config.
func (c *Config) FallbackPolicy() rating.FallbackPolicy {
	policy, _ := rating.ParseFallbackPolicy(c.Ratings.Fallback)
	return policy
}
