package directory

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cod_ledger/internal/apperrors"
	"github.com/SscSPs/cod_ledger/internal/core/ports/external"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPartyDirectory struct {
	mock.Mock
}

func (m *mockPartyDirectory) ResolveName(ctx context.Context, kind external.PartyKind, id string) (string, error) {
	args := m.Called(ctx, kind, id)
	return args.String(0), args.Error(1)
}

func TestCachedPartyDirectory_HitsBackendOnce(t *testing.T) {
	ctx := context.Background()
	backend := new(mockPartyDirectory)
	backend.On("ResolveName", ctx, external.PartyHub, "hub-1").Return("Andheri Hub", nil).Once()

	d := NewCachedPartyDirectory(backend, 16, time.Minute)
	for i := 0; i < 3; i++ {
		name, err := d.ResolveName(ctx, external.PartyHub, "hub-1")
		require.NoError(t, err)
		assert.Equal(t, "Andheri Hub", name)
	}
	backend.AssertExpectations(t)
}

func TestCachedPartyDirectory_KindIsPartOfTheKey(t *testing.T) {
	ctx := context.Background()
	backend := new(mockPartyDirectory)
	backend.On("ResolveName", ctx, external.PartyHub, "x1").Return("Hub X", nil).Once()
	backend.On("ResolveName", ctx, external.PartyUser, "x1").Return("User X", nil).Once()

	d := NewCachedPartyDirectory(backend, 16, time.Minute)
	hub, err := d.ResolveName(ctx, external.PartyHub, "x1")
	require.NoError(t, err)
	user, err := d.ResolveName(ctx, external.PartyUser, "x1")
	require.NoError(t, err)
	assert.Equal(t, "Hub X", hub)
	assert.Equal(t, "User X", user)
}

func TestCachedPartyDirectory_DoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	backend := new(mockPartyDirectory)
	backend.On("ResolveName", ctx, external.PartyClient, "c1").Return("", apperrors.ErrNotFound).Twice()

	d := NewCachedPartyDirectory(backend, 16, time.Minute)
	_, err := d.ResolveName(ctx, external.PartyClient, "c1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = d.ResolveName(ctx, external.PartyClient, "c1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	backend.AssertExpectations(t)
}

func TestCachedPartyDirectory_Purge(t *testing.T) {
	ctx := context.Background()
	backend := new(mockPartyDirectory)
	backend.On("ResolveName", ctx, external.PartyHub, "hub-1").Return("Andheri Hub", nil).Twice()

	d := NewCachedPartyDirectory(backend, 16, time.Minute)
	_, err := d.ResolveName(ctx, external.PartyHub, "hub-1")
	require.NoError(t, err)
	d.Purge()
	_, err = d.ResolveName(ctx, external.PartyHub, "hub-1")
	require.NoError(t, err)
	backend.AssertExpectations(t)
}
