package config

import (
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Search.MaxDepth != 2 || cfg.Search.MaxVisited != 10000 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
	if cfg.Search.DefaultTopK != 5 || cfg.Search.MaxTopK != 20 {
		t.Errorf("top-k defaults = %+v", cfg.Search)
	}
	if cfg.Catalog.ProductsPath == "" {
		t.Error("products path default missing")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.HTTP.Port = 9000
	cfg.Search.MaxDepth = 3
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.HTTP.Port)
	}
	if cfg.Search.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.Search.MaxDepth)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults pass", func(*Config) {}, ""},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"depth too large", func(c *Config) { c.Search.MaxDepth = 11 }, "max_depth"},
		{"default top-k above max", func(c *Config) { c.Search.DefaultTopK = 30 }, "default_top_k"},
		{"missing products path", func(c *Config) { c.Catalog.ProductsPath = "" }, "products_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SHOPGRAPH_TEST_PORT", "9090")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "port: ${SHOPGRAPH_TEST_PORT}", "port: 9090"},
		{"unset variable", "path: ${SHOPGRAPH_TEST_UNSET}", "path: "},
		{"default used", "path: ${SHOPGRAPH_TEST_UNSET:-data/products.json}", "path: data/products.json"},
		{"default ignored when set", "port: ${SHOPGRAPH_TEST_PORT:-1234}", "port: 9090"},
		{"no variables", "port: 8080", "port: 8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tt.input))); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local) error: %v", err)
	}
	if cfg.HTTP.Port == 0 || cfg.Catalog.ProductsPath == "" {
		t.Errorf("config = %+v", cfg)
	}
	if len(cfg.SimilarCategories) == 0 {
		t.Error("similar_categories missing from local config")
	}
}
