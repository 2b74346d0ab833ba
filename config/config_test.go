package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Reeve: ReeveConfig{
			URL:     "http://localhost:5000",
			APIKey:  "valid-api-key",
			Timeout: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:    "valid config with api key",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name: "valid config with credentials",
			mutate: func(cfg *Config) {
				cfg.Reeve.APIKey = ""
				cfg.Reeve.Username = "alice"
				cfg.Reeve.Password = "hunter2"
			},
			wantErr: false,
		},
		{
			name: "missing URL",
			mutate: func(cfg *Config) {
				cfg.Reeve.URL = ""
			},
			wantErr: true,
		},
		{
			name: "no api key and no credentials",
			mutate: func(cfg *Config) {
				cfg.Reeve.APIKey = ""
				cfg.Reeve.Username = ""
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			mutate: func(cfg *Config) {
				cfg.Reeve.Timeout = -1
			},
			wantErr: true,
		},
		{
			name: "invalid logging level",
			mutate: func(cfg *Config) {
				cfg.Logging.Level = "loud"
			},
			wantErr: true,
		},
		{
			name: "invalid logging format",
			mutate: func(cfg *Config) {
				cfg.Logging.Format = "xml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
