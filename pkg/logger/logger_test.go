package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("cualquiera"))
}

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Out: &buf})

	l.Component("mailer").Info().Str("to", "a@b.com").Msg("correo enviado")
	l.Debug().Msg("no debe salir")

	out := buf.String()
	assert.Contains(t, out, `"component":"mailer"`)
	assert.Contains(t, out, `"message":"correo enviado"`)
	assert.NotContains(t, out, "no debe salir")
}
