package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultFixedBlockPageSizeKiB, cfg.FixedBlockPageSizeKiB())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultFixedBlockPageSizeKiB, cfg.FixedBlockPageKiB)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fixed_block_page_size_kib: 64\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.FixedBlockPageSizeKiB())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fixed_block_page_size_kib: 64\n"), 0o644))
	t.Setenv(EnvFixedBlockPageSize, "32")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 32, cfg.FixedBlockPageSizeKiB())
}

func TestLoadInvalid(t *testing.T) {
	t.Run("bad env", func(t *testing.T) {
		t.Setenv(EnvFixedBlockPageSize, "lots")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("zero", func(t *testing.T) {
		t.Setenv(EnvFixedBlockPageSize, "0")
		_, err := Load("")
		require.ErrorIs(t, err, ErrInvalid)
	})
	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pagekit.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fixed_block_page_size_kib: [1\n"), 0o644))
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestStatic(t *testing.T) {
	require.Equal(t, 8, Static(8).FixedBlockPageSizeKiB())
	require.ErrorIs(t, Static(-1).Validate(), ErrInvalid)
}
