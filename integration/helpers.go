//go:build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// binaryPath returns the path to the built CLI binary
func binaryPath(t *testing.T) string {
	t.Helper()
	paths := []string{
		"../work",
		filepath.Join(os.Getenv("GOPATH"), "bin", "work"),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			abs, _ := filepath.Abs(p)
			return abs
		}
	}

	t.Log("Binary not found, building...")
	cmd := exec.Command("go", "build", "-o", "../work", "../cmd/work")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}

	abs, _ := filepath.Abs("../work")
	return abs
}

// workspace is a data directory plus a config pointing at it
type workspace struct {
	t          *testing.T
	binary     string
	dataDir    string
	configPath string
}

func newWorkspace(t *testing.T, backend string) *workspace {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	config := `[general]
data_dir = "` + dir + `"
backend = "` + backend + `"

[display]
color = false

[log]
level = "warn"
`
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	return &workspace{t: t, binary: binaryPath(t), dataDir: dir, configPath: configPath}
}

// run executes the binary and returns stdout and stderr
func (w *workspace) run(stdin string, args ...string) (string, string, error) {
	w.t.Helper()
	cmd := exec.Command(w.binary, append([]string{"--config", w.configPath}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func (w *workspace) mustRun(stdin string, args ...string) string {
	w.t.Helper()
	out, errOut, err := w.run(stdin, args...)
	if err != nil {
		w.t.Fatalf("work %s failed: %v\n%s", strings.Join(args, " "), err, errOut)
	}
	return out
}
