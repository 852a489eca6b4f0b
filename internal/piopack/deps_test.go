package piopack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosixToWin(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/c/msys64/usr/bin/msys-2.0.dll", "c:/msys64/usr/bin/msys-2.0.dll"},
		{"/d/tools/lib.dll", "d:/tools/lib.dll"},
		{"relative/path.dll", "relative/path.dll"},
		{"/c", "/c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, posixToWin(tt.in))
	}
}

// writeStub drops an executable shell script into dir.
func writeStub(t *testing.T, dir, name, script string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

// stubPath prepends dir to PATH so stub tools win over the host's.
func stubPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// touch creates an empty file, with parents.
func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestExtractDynamicLibraries(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	// The translated c:/... paths resolve relative to the working
	// directory here, which stands in for a native drive root.
	touch(t, "c:/msys64/usr/bin/msys-2.0.dll")
	touch(t, "c:/msys64/mingw64/bin/libstdc++-6.dll")
	touch(t, "c:/windows/System32/KERNEL32.DLL")

	binary := filepath.Join(tmp, "cppcheck.exe")
	touch(t, binary)

	stubDir := filepath.Join(tmp, "stubs")
	require.NoError(t, os.MkdirAll(stubDir, 0o755))
	writeStub(t, stubDir, "ldd", `#!/bin/sh
cat <<'EOF'
	msys-2.0.dll => /c/msys64/usr/bin/msys-2.0.dll (0x7ff8c0000000)
	KERNEL32.DLL => /c/windows/System32/KERNEL32.DLL (0x7ff8e0000000)
	not a dependency line at all
	libstdc++-6.dll => /c/msys64/mingw64/bin/libstdc++-6.dll (0x7ff8d0000000)
EOF
`)
	stubPath(t, stubDir)

	execCtx := NewExecutor(context.Background())
	libs, err := extractDynamicLibraries(execCtx, binary, []string{"msys64"})
	require.NoError(t, err)

	// Only allow-listed locations survive, in encounter order; the OS
	// library and the unparseable line are both dropped.
	assert.Equal(t, []string{
		"c:/msys64/usr/bin/msys-2.0.dll",
		"c:/msys64/mingw64/bin/libstdc++-6.dll",
	}, libs)
}

func TestExtractDynamicLibrariesStaticBinary(t *testing.T) {
	tmp := t.TempDir()
	binary := filepath.Join(tmp, "cppcheck")
	touch(t, binary)

	stubDir := filepath.Join(tmp, "stubs")
	require.NoError(t, os.MkdirAll(stubDir, 0o755))
	writeStub(t, stubDir, "ldd", "#!/bin/sh\nexit 1\n")
	stubPath(t, stubDir)

	execCtx := NewExecutor(context.Background())
	libs, err := extractDynamicLibraries(execCtx, binary, []string{"msys64"})
	require.NoError(t, err)
	assert.Empty(t, libs)
}

func TestExtractDynamicLibrariesMissingBinary(t *testing.T) {
	execCtx := NewExecutor(context.Background())
	_, err := extractDynamicLibraries(execCtx, filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
}

func TestExtractDynamicLibrariesReportedPathMissing(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)

	binary := filepath.Join(tmp, "cppcheck.exe")
	touch(t, binary)

	stubDir := filepath.Join(tmp, "stubs")
	require.NoError(t, os.MkdirAll(stubDir, 0o755))
	writeStub(t, stubDir, "ldd", `#!/bin/sh
echo "	msys-2.0.dll => /c/msys64/usr/bin/msys-2.0.dll (0x7ff8c0000000)"
`)
	stubPath(t, stubDir)

	execCtx := NewExecutor(context.Background())
	_, err := extractDynamicLibraries(execCtx, binary, []string{"msys64"})
	require.ErrorContains(t, err, "doesn't exist")
}
