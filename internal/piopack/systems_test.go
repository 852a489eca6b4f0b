package piopack

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTargetSystems(t *testing.T) {
	cfg := &Config{Values: map[string]string{
		systemValuesEnv: ` "linux_x86_64" , windows_amd64 ,`,
	}}

	assert.Equal(t, []string{"linux_x86_64", "windows_amd64"}, resolveTargetSystems(cfg))
}

func TestResolveTargetSystemsFromConfFile(t *testing.T) {
	t.Setenv(systemValuesEnv, "")

	path := filepath.Join(t.TempDir(), "piopack.conf")
	require.NoError(t, os.WriteFile(path, []byte(systemValuesEnv+"=windows_amd64\n"), 0o644))
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"windows_amd64"}, resolveTargetSystems(cfg))
}

func TestResolveTargetSystemsHostDefault(t *testing.T) {
	t.Setenv(systemValuesEnv, "")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "piopack.conf"))
	require.NoError(t, err)

	systems := resolveTargetSystems(cfg)
	assert.Len(t, systems, 1)
	assert.True(t, strings.HasPrefix(systems[0], runtime.GOOS+"_"))
}

func TestWindowsTarget(t *testing.T) {
	assert.True(t, windowsTarget([]string{"windows_amd64"}))
	assert.False(t, windowsTarget([]string{"linux_x86_64", "windows_amd64"}))
	assert.False(t, windowsTarget(nil))
}

func TestNormalizeBinary(t *testing.T) {
	assert.Equal(t, "cppcheck.exe", normalizeBinary("cppcheck", true))
	assert.Equal(t, "cppcheck", normalizeBinary("cppcheck", false))
}
