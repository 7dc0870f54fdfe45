package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	otelinfra "reward-server/internal/infrastructure/observability/otel"
)

func TestMetricsMiddleware_SuccessfulRequest(t *testing.T) {
	otel.SetMeterProvider(noop.NewMeterProvider())

	metrics, err := otelinfra.NewMetrics("test-meter")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rewards", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rewards")

	handler := MetricsMiddleware(metrics)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	err = handler(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsMiddleware_RecordsClientError(t *testing.T) {
	otel.SetMeterProvider(noop.NewMeterProvider())

	metrics, err := otelinfra.NewMetrics("test-meter")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/rewards/redeem", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rewards/redeem")

	handler := MetricsMiddleware(metrics)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	})

	// EchoのHTTPErrorはエラーハンドラーで処理されるため、エラーが返される
	err = handler(c)
	assert.Error(t, err)
}

func TestMetricsMiddleware_ErrorWithoutStatusCode(t *testing.T) {
	otel.SetMeterProvider(noop.NewMeterProvider())

	metrics, err := otelinfra.NewMetrics("test-meter")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rewards", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rewards")

	testErr := errors.New("test error")
	handler := MetricsMiddleware(metrics)(func(c echo.Context) error {
		return testErr
	})

	err = handler(c)
	assert.Equal(t, testErr, err)
}
