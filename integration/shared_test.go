//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/fixture"
)

var (
	// sharedFuikkPath holds the path to a shared fuikk binary built once for all tests.
	sharedFuikkPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getFuikkBinary returns the path to the fuikk binary, building it once if needed.
func getFuikkBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "fuikk-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		fuikkPath := filepath.Join(tempDir, "fuikk")
		buildCmd := exec.Command("go", "build", "-o", fuikkPath, "./cmd/fuikk")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build fuikk: %v", err))
		}

		sharedFuikkPath = fuikkPath
	})

	return sharedFuikkPath
}

// fixtureArgs writes the test data tree and returns the flags pointing at it.
func fixtureArgs(t *testing.T) []string {
	t.Helper()
	cfg := fixture.Write(t)
	return pathArgs(cfg)
}

func pathArgs(cfg *contract.Config) []string {
	return []string{
		"--data-dir", cfg.DataDir,
		"--courses-info", cfg.CoursesInfo,
		"--course-names", cfg.CourseNames,
		"--color", "no",
	}
}

// runFuikk runs the binary and returns its standard output.
func runFuikk(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getFuikkBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Logf("Command failed: %s\nStderr: %s", cmd.String(), string(exitErr.Stderr))
		}
		return string(output), err
	}
	return string(output), nil
}
