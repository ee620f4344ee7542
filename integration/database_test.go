//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts a container and terminates it when the test ends.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// runBackendLifecycle clears both stores, runs the pipeline and checks the status commands.
func runBackendLifecycle(t *testing.T, env []string) {
	t.Helper()
	args := fixtureArgs(t)

	_, err := runFuikk(t, env, "cache", "clear")
	require.NoError(t, err)
	_, err = runFuikk(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runFuikk(t, env, append([]string{"stats"}, args...)...)
	require.NoError(t, err)
	_, err = runFuikk(t, env, append([]string{"courses"}, args...)...)
	require.NoError(t, err)

	out, err := runFuikk(t, env, "cache", "status")
	require.NoError(t, err)
	require.Contains(t, out, "Total Entries: 2")

	out, err = runFuikk(t, env, "history", "status")
	require.NoError(t, err)
	require.Contains(t, out, "Total Runs: 1")
}

// TestFuikkWithMySQL runs the pipeline with MySQL cache and history backends.
func TestFuikkWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "fuikk",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/fuikk?parseTime=true", host, port)
	runBackendLifecycle(t, []string{
		"FUIKK_CACHE_BACKEND=mysql",
		"FUIKK_CACHE_DB_CONNECT=" + connStr,
		"FUIKK_HISTORY_BACKEND=mysql",
		"FUIKK_HISTORY_DB_CONNECT=" + connStr,
	})
}

// TestFuikkWithPostgres runs the pipeline with PostgreSQL cache and history backends.
func TestFuikkWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432")

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port)
	runBackendLifecycle(t, []string{
		"FUIKK_CACHE_BACKEND=postgresql",
		"FUIKK_CACHE_DB_CONNECT=" + connStr,
		"FUIKK_HISTORY_BACKEND=postgresql",
		"FUIKK_HISTORY_DB_CONNECT=" + connStr,
	})
}

// TestFuikkWithRedisCache runs stats with the Redis cache backend.
func TestFuikkWithRedisCache(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379")

	env := []string{
		"FUIKK_CACHE_BACKEND=redis",
		"FUIKK_CACHE_DB_CONNECT=" + fmt.Sprintf("redis://%s:%s/0", host, port),
	}
	args := fixtureArgs(t)

	_, err := runFuikk(t, env, "cache", "clear")
	require.NoError(t, err)
	_, err = runFuikk(t, env, append([]string{"stats"}, args...)...)
	require.NoError(t, err)

	out, err := runFuikk(t, env, "cache", "status")
	require.NoError(t, err)
	require.Contains(t, out, "Total Entries: 2")
}
