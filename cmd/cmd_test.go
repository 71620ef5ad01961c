package cmd

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/config"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/server"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunDemo(context.Background(), &out, store.NewInMemoryStore()))
	assert.Equal(t, "John Doe\nAdmins: 1\n", out.String())
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)
	assert.Equal(t, "John Doe\nAdmins: 1\n", out)
}

func startServer(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	grpcServer := server.New(store.NewInMemoryStore())
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)
	return lis.Addr().String()
}

func TestClientCommands(t *testing.T) {
	addr := startServer(t)
	base := []string{"--insecure", "--addr", addr}

	out, err := execute(t, append([]string{"client", "add", "--id", "1", "--name", "John Doe", "--email", "john@example.com", "--role", "admin"}, base...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Added user: John Doe <john@example.com> (admin)")

	_, err = execute(t, append([]string{"client", "add", "--id", "2", "--name", "Jane Smith", "--email", "jane@example.com", "--role", "user"}, base...)...)
	require.NoError(t, err)

	out, err = execute(t, append([]string{"client", "get", "--id", "1"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "1\tJohn Doe <john@example.com>\tadmin\n", out)

	out, err = execute(t, append([]string{"client", "get", "--id", "7"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "User not found\n", out)

	out, err = execute(t, append([]string{"client", "list"}, base...)...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1\t"))
	assert.True(t, strings.HasPrefix(lines[1], "2\t"))

	out, err = execute(t, append([]string{"client", "by-role", "--role", "user"}, base...)...)
	require.NoError(t, err)
	assert.Equal(t, "2\tJane Smith <jane@example.com>\tuser\n", out)
}

func TestClientAdd_InvalidRole(t *testing.T) {
	_, err := execute(t, "client", "add", "--insecure", "--id", "1", "--role", "root")
	require.Error(t, err)
}

func TestApplyServerFlags(t *testing.T) {
	c := config.Default()
	require.NoError(t, runServerCmd.Flags().Set("backend", "sqlite"))
	require.NoError(t, runServerCmd.Flags().Set("sqlite-path", "/tmp/records.db"))
	t.Cleanup(func() {
		_ = runServerCmd.Flags().Set("backend", config.BackendMemory)
		_ = runServerCmd.Flags().Set("sqlite-path", "users.db")
	})

	applyServerFlags(runServerCmd, c)
	assert.Equal(t, config.BackendSQLite, c.Store.Backend)
	assert.Equal(t, "/tmp/records.db", c.Store.SQLite.Path)
	// Flags that were not set leave the config alone.
	assert.Equal(t, config.Default().GRPC.Addr, c.GRPC.Addr)
}

func TestServeStopsOnCancel(t *testing.T) {
	c := config.Default()
	c.GRPC.Addr = "127.0.0.1:0"
	c.HTTP.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, c, store.NewInMemoryStore()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
