package utils

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUIDv7(t *testing.T) {
	id := GenerateUUIDv7()
	require.Equal(t, uuid.Version(7), id.Version())
}

func TestGenerateUUIDv7_FallbackBranch(t *testing.T) {
	orig := newUUIDv7
	t.Cleanup(func() { newUUIDv7 = orig })

	newUUIDv7 = func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("v7 failed")
	}
	id := GenerateUUIDv7()
	require.NotEqual(t, uuid.Nil, id)
	require.Equal(t, uuid.Version(4), id.Version())
}

func TestParseUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids, err := ParseUUIDs([]string{a.String(), b.String()})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = ParseUUIDs([]string{a.String(), "nope"})
	require.Error(t, err)
}
