package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reward-server/internal/infrastructure/config"
)

func TestInitMeter(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.OpenTelemetryConfig
		wantError bool
	}{
		{
			name: "正常系: 無効時はシャットダウン関数のみ返す",
			cfg: &config.OpenTelemetryConfig{
				Enabled: false,
			},
		},
		{
			name: "正常系: stdoutエクスポーター",
			cfg: &config.OpenTelemetryConfig{
				Enabled:         true,
				MetricsExporter: "stdout",
			},
		},
		{
			name: "異常系: 未対応のエクスポーター",
			cfg: &config.OpenTelemetryConfig{
				Enabled:         true,
				MetricsExporter: "unknown",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := InitMeter(tt.cfg)

			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, shutdown)
			} else {
				require.NoError(t, err)
				require.NotNil(t, shutdown)
				assert.NoError(t, shutdown(context.Background()))
			}
		})
	}
}
