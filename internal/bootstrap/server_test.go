package bootstrap

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{Address: "127.0.0.1:0"},
		GRPC: config.GRPCConfig{Address: "127.0.0.1:0"},
	}
}

func TestNewServers_NotServingUntilStarted(t *testing.T) {
	s := newServers(testConfig(), http.NotFoundHandler())

	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
	assert.Equal(t, "127.0.0.1:0", s.httpServer.Addr)
}

func TestRun_StopsOnCancel(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Run(ctx, testConfig(), http.NotFoundHandler(), logger) }()

	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "servers started" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := testConfig()
	cfg.GRPC.Address = "256.0.0.1:1"

	err := Run(context.Background(), cfg, http.NotFoundHandler(), logger)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen gRPC")
}
