package main_test

import (
	"testing"
	"time"

	"github.com/eolchecker/eol"
	main "github.com/eolchecker/eol/cmd/eol"
	"github.com/eolchecker/eol/refresh"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("uses defaults when the file is missing", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(afero.NewMemMapFs(), "/home/user/.eol/config.yaml", false, noEnv)
		require.NoError(t, err)

		assert.Equal(t, refresh.DefaultSoftwareURL, cfg.SoftwareURL)
		assert.Equal(t, refresh.DefaultHardwareURL, cfg.HardwareURL)
		assert.Equal(t, []string{"brocade"}, cfg.ExcludeVendors)
		assert.Equal(t, 7*24*time.Hour, cfg.MaxAge)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.True(t, cfg.Normalizer().LegacyNone)
		assert.NotEmpty(t, cfg.Database)
	})

	t.Run("fails when a required file is missing", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(afero.NewMemMapFs(), "/etc/eol.yaml", true, noEnv)
		assert.Equal(t, eol.EINVALID, eol.ErrorCode(err))
	})

	t.Run("merges the file over the defaults", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/eol.yaml", []byte(`
database: /var/lib/eol/eol.db
software_url: https://mirror.example/api
exclude_vendors: [" Brocade ", HITACHI]
concurrency: 8
timeout: 30s
max_age: 24h
legacy_none: false
`), 0644))

		cfg, err := main.LoadConfig(fs, "/eol.yaml", true, noEnv)
		require.NoError(t, err)

		assert.Equal(t, "/var/lib/eol/eol.db", cfg.Database)
		assert.Equal(t, "https://mirror.example/api", cfg.SoftwareURL)
		assert.Equal(t, refresh.DefaultHardwareURL, cfg.HardwareURL)
		assert.Equal(t, []string{"brocade", "hitachi"}, cfg.ExcludeVendors)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.Equal(t, float64(2), cfg.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 24*time.Hour, cfg.MaxAge)
		assert.False(t, cfg.Normalizer().LegacyNone)
	})

	t.Run("an empty exclude list excludes nothing", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/eol.yaml", []byte("exclude_vendors: []\n"), 0644))

		cfg, err := main.LoadConfig(fs, "/eol.yaml", true, noEnv)
		require.NoError(t, err)
		assert.Empty(t, cfg.ExcludeVendors)
	})

	t.Run("accepts an empty file", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/eol.yaml", nil, 0644))

		cfg, err := main.LoadConfig(fs, "/eol.yaml", true, noEnv)
		require.NoError(t, err)
		assert.Equal(t, refresh.DefaultSoftwareURL, cfg.SoftwareURL)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/eol.yaml", []byte("softwre_url: https://typo.example\n"), 0644))

		_, err := main.LoadConfig(fs, "/eol.yaml", true, noEnv)
		assert.Equal(t, eol.EINVALID, eol.ErrorCode(err))
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/eol.yaml", []byte("rate_limit: -1\n"), 0644))

		_, err := main.LoadConfig(fs, "/eol.yaml", true, noEnv)
		assert.Equal(t, eol.EINVALID, eol.ErrorCode(err))
	})

	t.Run("environment overrides the database path", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/eol.yaml", []byte("database: /from/file.db\n"), 0644))

		getenv := func(key string) string {
			if key == "EOL_DB" {
				return "/from/env.db"
			}
			return ""
		}

		cfg, err := main.LoadConfig(fs, "/eol.yaml", true, getenv)
		require.NoError(t, err)
		assert.Equal(t, "/from/env.db", cfg.Database)
	})
}
