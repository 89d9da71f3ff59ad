package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-starter/internal/config"
	"github.com/MKhiriev/go-api-starter/internal/logger"
	"github.com/MKhiriev/go-api-starter/models"
)

func newTestChecker(metricsEnabled bool) *Checker {
	cfg := &config.StructuredConfig{
		App: config.App{
			Version: "1.2.3",
			Env:     config.EnvTest,
		},
		Health: config.Health{
			Path:           "/health",
			MetricsEnabled: metricsEnabled,
		},
	}
	return NewChecker(cfg, logger.Nop())
}

func TestBasic_AlwaysHealthy(t *testing.T) {
	c := newTestChecker(true)

	resp := c.Basic()
	assert.Equal(t, models.StatusHealthy, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, config.EnvTest, resp.Environment)
	assert.GreaterOrEqual(t, resp.Uptime, int64(0))
	assert.Nil(t, resp.System)
	assert.Nil(t, resp.Services)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}

func TestDetailed_MetricsDisabledSkipsSnapshot(t *testing.T) {
	c := newTestChecker(false)

	resp := c.Detailed(context.Background())
	assert.Equal(t, models.StatusHealthy, resp.Status)
	assert.Nil(t, resp.System)
}

func TestDetailed_CollectsSystemSnapshot(t *testing.T) {
	c := newTestChecker(true)

	resp := c.Detailed(context.Background())
	require.NotNil(t, resp.System)
	assert.Greater(t, resp.System.Memory.Total, uint64(0))
	assert.GreaterOrEqual(t, resp.System.Memory.Percentage, 0.0)
	assert.Greater(t, resp.System.CPU.Cores, 0)
	assert.Equal(t, resp.Uptime, resp.System.Process.Uptime)
	assert.NotZero(t, resp.System.Process.PID)
}

func TestComprehensive_StatusDerivation_TableTest(t *testing.T) {
	upProbe := func(ctx context.Context) (bool, error) { return true, nil }
	downProbe := func(ctx context.Context) (bool, error) { return false, nil }
	errProbe := func(ctx context.Context) (bool, error) { return false, errors.New("connection refused") }
	panicProbe := func(ctx context.Context) (bool, error) { panic("probe exploded") }

	tests := []struct {
		name         string
		probes       map[string]Probe
		wantStatus   string
		wantServices map[string]string
	}{
		{
			name:       "no probes stays healthy",
			probes:     nil,
			wantStatus: models.StatusHealthy,
		},
		{
			name:         "all up",
			probes:       map[string]Probe{"store": upProbe, "cache": upProbe},
			wantStatus:   models.StatusHealthy,
			wantServices: map[string]string{"store": models.ServiceUp, "cache": models.ServiceUp},
		},
		{
			name:         "one down makes it unhealthy",
			probes:       map[string]Probe{"store": upProbe, "cache": downProbe},
			wantStatus:   models.StatusUnhealthy,
			wantServices: map[string]string{"store": models.ServiceUp, "cache": models.ServiceDown},
		},
		{
			name:         "probe error counts as down",
			probes:       map[string]Probe{"store": errProbe},
			wantStatus:   models.StatusUnhealthy,
			wantServices: map[string]string{"store": models.ServiceDown},
		},
		{
			name:         "probe panic is caught as down",
			probes:       map[string]Probe{"store": panicProbe, "cache": upProbe},
			wantStatus:   models.StatusUnhealthy,
			wantServices: map[string]string{"store": models.ServiceDown, "cache": models.ServiceUp},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChecker(false)

			resp := c.Comprehensive(context.Background(), tt.probes)
			assert.Equal(t, tt.wantStatus, resp.Status)

			for name, wantStatus := range tt.wantServices {
				svc, ok := resp.Services[name]
				require.True(t, ok, "service %s missing from snapshot", name)
				assert.Equal(t, wantStatus, svc.Status)
				assert.GreaterOrEqual(t, svc.ResponseTime, int64(0))
				assert.NotEmpty(t, svc.LastChecked)
			}
		})
	}
}

func TestDeriveOverallStatus_DegradedBeatsHealthy(t *testing.T) {
	services := map[string]models.ServiceHealth{
		"a": {Status: models.ServiceUp},
		"b": {Status: models.ServiceDegraded},
	}
	assert.Equal(t, models.StatusDegraded, deriveOverallStatus(services))
}

func TestPingProbe(t *testing.T) {
	okPinger := pingerFunc(func(ctx context.Context) error { return nil })
	up, err := PingProbe(okPinger)(context.Background())
	require.NoError(t, err)
	assert.True(t, up)

	badPinger := pingerFunc(func(ctx context.Context) error { return errors.New("refused") })
	up, err = PingProbe(badPinger)(context.Background())
	require.Error(t, err)
	assert.False(t, up)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHTTPProbe(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantUp     bool
	}{
		{name: "200 is up", statusCode: http.StatusOK, wantUp: true},
		{name: "404 is still up", statusCode: http.StatusNotFound, wantUp: true},
		{name: "500 is down", statusCode: http.StatusInternalServerError, wantUp: false},
		{name: "503 is down", statusCode: http.StatusServiceUnavailable, wantUp: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			probe := HTTPProbe(resty.New(), srv.URL)
			up, err := probe(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantUp, up)
		})
	}
}

func TestHTTPProbe_ConnectionRefused(t *testing.T) {
	probe := HTTPProbe(resty.New().SetTimeout(200*time.Millisecond), "http://127.0.0.1:1")
	up, err := probe(context.Background())
	require.Error(t, err)
	assert.False(t, up)
}
