package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSigner_EmptySecret(t *testing.T) {
	_, err := NewSigner("")
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestSigner_SignIsDeterministic(t *testing.T) {
	s, err := NewSigner("super-secret")
	require.NoError(t, err)

	id := uuid.NewString()
	a, err := s.Sign(id)
	require.NoError(t, err)
	b, err := s.Sign(id)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, id, a, "signed id must differ from the raw id")
	assert.True(t, s.Verify(id, a))
}

func TestSigner_DifferentSessionsDifferentSignatures(t *testing.T) {
	s, err := NewSigner("super-secret")
	require.NoError(t, err)

	a, err := s.Sign(uuid.NewString())
	require.NoError(t, err)
	b, err := s.Sign(uuid.NewString())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSigner_WrongSecretFails(t *testing.T) {
	right, err := NewSigner("right-secret")
	require.NoError(t, err)
	wrong, err := NewSigner("wrong-secret")
	require.NoError(t, err)

	id := uuid.NewString()
	signed, err := right.Sign(id)
	require.NoError(t, err)

	assert.False(t, wrong.Verify(id, signed))
}

func TestSigner_VerifyRejectsGarbage(t *testing.T) {
	s, err := NewSigner("k")
	require.NoError(t, err)

	id := uuid.NewString()
	assert.False(t, s.Verify(id, "not base64 !!"))
	assert.False(t, s.Verify(id, ""))

	other, err := s.Sign(uuid.NewString())
	require.NoError(t, err)
	assert.False(t, s.Verify(id, other))
}
