package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicething/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	id := jwt.Identity{Subject: "user_2abc", Email: "ana@example.com", Name: "Ana", ImageURL: "https://img/a.png"}
	token, err := jwt.Generate(secret, "invoicething", id, 5)
	require.NoError(t, err)

	got, err := jwt.Parse(secret, "invoicething", token)
	require.NoError(t, err)
	assert.Equal(t, id, *got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, "", jwt.Identity{Subject: "s"}, 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", "", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate(secret, "", jwt.Identity{Subject: "s"}, -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, "", token)
	assert.Error(t, err)
}

func TestParse_EmisorDistinto(t *testing.T) {
	token, err := jwt.Generate(secret, "otro", jwt.Identity{Subject: "s"}, 5)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, "invoicething", token)
	assert.Error(t, err)
}

func TestGenerate_SinSubject(t *testing.T) {
	_, err := jwt.Generate(secret, "", jwt.Identity{}, 5)
	assert.Error(t, err)
}
