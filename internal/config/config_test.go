package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocomig/internal/diag"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	cfg, err := Resolve(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "cocomig.toml"), "[markers]\nmodule = \"pyuvm\"\n")
	deep := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	path, ok, err := Find(deep)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "cocomig.toml"), path)

	cfg, err := Resolve(filepath.Join(deep, "tb.py"), "")
	require.NoError(t, err)
	assert.Equal(t, "pyuvm", cfg.Markers.Module)
	assert.Equal(t, "coroutine", cfg.Markers.Coroutine)
	assert.Equal(t, []string{".py"}, cfg.Files.Extensions)
	assert.Equal(t, DefaultSuffix, cfg.Files.Suffix)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cocomig.yaml")
	write(t, path, "markers:\n  fork: launch\nfiles:\n  exclude: [\"build/**\"]\n  suffix: .v2.py\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "launch", cfg.Markers.Fork)
	assert.Equal(t, []string{"build/**"}, cfg.Files.Exclude)
	assert.Equal(t, ".v2.py", cfg.Files.Suffix)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cocomig.yml")
	write(t, path, "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cocotb", cfg.Markers.Module)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		file string
		body string
		code diag.Code
	}{
		{"bad toml", "cocomig.toml", "[markers\n", diag.CfgInvalid},
		{"unknown toml key", "cocomig.toml", "[markers]\nmodul = \"x\"\n", diag.CfgInvalid},
		{"unknown yaml key", ".cocomig.yaml", "marker:\n  module: x\n", diag.CfgInvalid},
		{"dotted marker", "cocomig.toml", "[markers]\nmodule = \"a.b\"\n", diag.CfgBadMarker},
		{"digit marker", "cocomig.toml", "[markers]\nfork = \"1fork\"\n", diag.CfgBadMarker},
		{"bad glob", "cocomig.toml", "[files]\nexclude = [\"[a\"]\n", diag.CfgBadGlob},
		{"bad extension", "cocomig.toml", "[files]\nextensions = [\"py\"]\n", diag.CfgInvalid},
		{"bad suffix", ".cocomig.yaml", "files:\n  suffix: out/x.py\n", diag.CfgInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			write(t, path, tc.body)
			_, err := Load(path)
			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tc.code, cerr.Code)
			assert.Equal(t, path, cerr.Path)
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, ok := range []string{"cocotb", "_x", "start_soon", "ReturnValue", "förk", "a1"} {
		assert.True(t, isIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "1a", "a-b", "a.b", "a b"} {
		assert.False(t, isIdentifier(bad), bad)
	}
}
