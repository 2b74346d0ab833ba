package config

// Config represents the complete configuration structure
type Config struct {
	Reeve   ReeveConfig   `mapstructure:"reeve"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ReeveConfig holds Reeve API connection details
type ReeveConfig struct {
	URL      string `mapstructure:"url"`
	APIKey   string `mapstructure:"api_key"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// Timeout is the HTTP client timeout in seconds.
	Timeout int `mapstructure:"timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
