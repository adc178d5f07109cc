package storage

import (
	"context"
	"testing"

	"pet-cadastro/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	repo, closeFn, err := Open(context.Background(), config.DB{Driver: config.DriverMemory})
	require.NoError(t, err)
	require.NotNil(t, repo)
	closeFn()

	assert.NoError(t, Migrate(context.Background(), config.DB{Driver: config.DriverMemory}))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.DB{Driver: "oracle"})
	assert.ErrorIs(t, err, config.ErrUnknownDriver)

	assert.ErrorIs(t, Migrate(context.Background(), config.DB{Driver: "oracle"}), config.ErrUnknownDriver)
}
