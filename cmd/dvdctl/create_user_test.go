package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dvdrental-api/pkg/validation"
)

func TestCreateUser_ValidaAntesDeConectar(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{
		"create-user", "--username", "no valido!", "--email", "no-es-email", "--password", "x", "--role", "root",
	})

	err := rootCmd.Execute()
	require.Error(t, err)

	var verr *validation.RequestValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "role")
}

func TestRoot_RegistraSubcomandos(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["create-user"])
}
