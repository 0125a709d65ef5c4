package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "\t", cfg.Delimiter)
	assert.Equal(t, -1, cfg.LabelColumn)
	assert.Equal(t, 2.0, cfg.Base)
	assert.Equal(t, "mim", cfg.Selection.Criterion)
	assert.Equal(t, 5, cfg.Selection.Count)
	assert.Equal(t, 1.0, cfg.Selection.Beta)
	assert.Equal(t, 1.0, cfg.Selection.Gamma)
	assert.Equal(t, "pmf.html", cfg.Chart.Output)
	assert.Equal(t, []int{1_000, 10_000, 100_000}, cfg.Bench.Sizes)
	assert.Equal(t, 5, cfg.Bench.Trials)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"delimiter": ",",
		"header": true,
		"base": 2.718281828459045,
		"selection": {"criterion": "betagamma", "count": 3, "beta": 0.5, "gamma": 0},
		"bench": {"sizes": [10, 20], "trials": 2}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ",", cfg.Delimiter)
	assert.True(t, cfg.Header)
	assert.InDelta(t, 2.718281828459045, cfg.Base, 1e-15)
	assert.Equal(t, "betagamma", cfg.Selection.Criterion)
	assert.Equal(t, 3, cfg.Selection.Count)
	assert.Equal(t, 0.5, cfg.Selection.Beta)
	assert.Equal(t, 0.0, cfg.Selection.Gamma)
	assert.Equal(t, []int{10, 20}, cfg.Bench.Sizes)
	assert.Equal(t, 2, cfg.Bench.Trials)
	assert.Equal(t, -1, cfg.LabelColumn, "unset keys keep defaults")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "label_column: 0\nchart:\n  output: out.html\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.LabelColumn)
	assert.Equal(t, "out.html", cfg.Chart.Output)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("MITOOLBOX_BASE", "10")
	t.Setenv("MITOOLBOX_SELECTION_COUNT", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Base)
	assert.Equal(t, 7, cfg.Selection.Count)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeFile(t, "config.json", `{ "base": `)
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Delimiter: "\t", Base: 2, Bench: Bench{Trials: 1, Sizes: []int{1}, States: []int{1}}}
	}
	require.NoError(t, (&Config{Delimiter: ",", Base: 2, Bench: Bench{Trials: 1}}).Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty delimiter", func(c *Config) { c.Delimiter = "" }},
		{"long delimiter", func(c *Config) { c.Delimiter = "||" }},
		{"base one", func(c *Config) { c.Base = 1 }},
		{"base negative", func(c *Config) { c.Base = -2 }},
		{"negative count", func(c *Config) { c.Selection.Count = -1 }},
		{"no trials", func(c *Config) { c.Bench.Trials = 0 }},
		{"zero size", func(c *Config) { c.Bench.Sizes = []int{0} }},
		{"zero states", func(c *Config) { c.Bench.States = []int{0} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
