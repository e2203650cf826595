package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/dvdrental-api/internal/application/ports"
)

type fakeSender struct {
	calls int
	err   error
	last  *gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.calls++
	f.last = m[0]
	return f.err
}

var activation = ports.Mail{To: "mary@example.com", Subject: "Activa tu cuenta", Body: "hola", Kind: "activation"}

func TestSend_OK(t *testing.T) {
	s := &fakeSender{}
	m := newSMTPMailer("no-reply@dvdrental.local", s, zerolog.Nop())

	require.NoError(t, m.Send(context.Background(), activation))
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, []string{"mary@example.com"}, s.last.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@dvdrental.local"}, s.last.GetHeader("From"))
}

func TestSend_BreakerSeAbreTrasFallosConsecutivos(t *testing.T) {
	s := &fakeSender{err: errors.New("connection refused")}
	m := newSMTPMailer("no-reply@dvdrental.local", s, zerolog.Nop())

	for i := 0; i < 5; i++ {
		err := m.Send(context.Background(), activation)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}

	err := m.Send(context.Background(), activation)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 5, s.calls, "con el breaker abierto no se contacta al servidor")
}

func TestSend_ContextoCancelado(t *testing.T) {
	s := &fakeSender{}
	m := newSMTPMailer("no-reply@dvdrental.local", s, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, activation), context.Canceled)
	assert.Zero(t, s.calls)
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, NewLogMailer(zerolog.Nop()).Send(context.Background(), activation))
}
