package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-core/pkg/logger"
)

func TestNew_CamposDelServicio(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Service: "erp-core", Env: "production", Level: "info", Out: &buf})
	l.Component("migrate").Info().Str("schema", "tenant_acme").Msg("migraciones aplicadas")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "erp-core", line["service"])
	assert.Equal(t, "production", line["env"])
	assert.Equal(t, "migrate", line["component"])
	assert.Equal(t, "tenant_acme", line["schema"])
	assert.Equal(t, "info", line["level"])
	assert.Contains(t, line, "time")
}

func TestWithContext_RecuperableConZerologCtx(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Service: "erp-core", Env: "production", Level: "debug", Out: &buf})
	ctx := l.WithContext(context.Background())

	got := zerolog.Ctx(ctx)
	assert.Equal(t, zerolog.DebugLevel, got.GetLevel())

	got.Debug().Msg("desde el contexto")
	assert.Contains(t, buf.String(), `"service":"erp-core"`)
}

func TestNew_NivelPorEntorno(t *testing.T) {
	var buf bytes.Buffer
	cases := []struct {
		env, level string
		want       zerolog.Level
	}{
		{"production", "verbose", zerolog.InfoLevel},
		{"production", "", zerolog.InfoLevel},
		{"development", "", zerolog.DebugLevel},
		{"production", " WARN ", zerolog.WarnLevel},
	}
	for _, tc := range cases {
		l := logger.New(logger.Config{Env: tc.env, Level: tc.level, Out: &buf})
		assert.Equal(t, tc.want, l.Zerolog().GetLevel(), "env=%s level=%q", tc.env, tc.level)
	}
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})
	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}
