package viewer

import (
	"context"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"archcompare/internal/artifact"
	"archcompare/pkg/logging"
)

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, "localhost:8501", Config{Address: "localhost", Port: 8501}.Addr())
	assert.Equal(t, "0.0.0.0:9000", Config{Address: "0.0.0.0", Port: 9000}.Addr())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)
	gin.SetMode(gin.TestMode)

	logger := logging.NewMockLogger()
	store := artifact.NewFileStore(logger)
	path := filepath.Join(t.TempDir(), "comparison.json")
	require.NoError(t, store.Write(path, testArtifact()))

	server, err := NewServer(Config{Address: "127.0.0.1", ServiceName: "archcompare-test"}, NewHandler(store, path, logger), logger)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	transport := &http.Transport{DisableKeepAlives: true}
	client := &http.Client{Transport: transport, Timeout: 5 * time.Second}

	resp, err := client.Get("http://" + ln.Addr().String() + "/api/v1/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ok", "artifact": true}`, string(body))
	transport.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "shutdown must be clean")
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_ListenError(t *testing.T) {
	// Occupy a port so the server cannot bind it
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	logger := logging.NewMockLogger()
	server, err := NewServer(Config{Address: "127.0.0.1", Port: port}, NewHandler(artifact.NewFileStore(logger), "x.json", logger), logger)
	require.NoError(t, err)

	err = server.ListenAndServe(context.Background())
	assert.ErrorContains(t, err, "failed to listen")
}
