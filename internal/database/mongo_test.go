package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectWithoutURI(t *testing.T) {
	ctx := context.Background()
	store, err := Connect(ctx, "", "edusaas")
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, StateUninitialized, store.State())

	// Every operation observes the unavailable condition, no crash.
	_, err = store.Create(ctx, "course", Document{"title": "T"})
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	_, err = store.List(ctx, "course", Document{})
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	_, err = store.Collections(ctx)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	assert.Equal(t, "edusaas", store.DatabaseName())
	assert.NoError(t, store.Disconnect(ctx))
}

func TestConnectWithMalformedURI(t *testing.T) {
	ctx := context.Background()

	// The driver rejects a bad scheme synchronously, so the handle ends
	// up Failed without ever reaching a server.
	store, err := Connect(ctx, "not-a-uri", "edusaas")
	require.Error(t, err)
	require.NotNil(t, store)
	assert.Equal(t, StateFailed, store.State())

	_, err = store.Create(ctx, "course", Document{"title": "T"})
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	_, err = store.List(ctx, "course", Document{})
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	_, err = store.Collections(ctx)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	assert.NoError(t, store.Disconnect(ctx))
}
