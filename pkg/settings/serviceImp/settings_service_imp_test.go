package serviceImp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slot "agrimanage/pkg/slot/repository"
	slotImp "agrimanage/pkg/slot/repositoryImp"
)

func TestDarkModeDefaultsOff(t *testing.T) {
	svc := NewSettingsService(slotImp.NewMemory(), nil)
	assert.False(t, svc.Get(context.Background()).DarkMode)
}

func TestDarkModePersists(t *testing.T) {
	ctx := context.Background()
	sl := slotImp.NewMemory()
	svc := NewSettingsService(sl, nil)

	got, err := svc.SetDarkMode(ctx, true)
	require.NoError(t, err)
	assert.True(t, got.DarkMode)

	raw, err := sl.Get(ctx, slot.KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))

	assert.True(t, NewSettingsService(sl, nil).Get(ctx).DarkMode)

	got, err = svc.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, got.DarkMode)
}

func TestDarkModeGarbageReadsOff(t *testing.T) {
	ctx := context.Background()
	sl := slotImp.NewMemory()
	require.NoError(t, sl.Put(ctx, slot.KeyDarkMode, []byte("maybe")))
	assert.False(t, NewSettingsService(sl, nil).Get(ctx).DarkMode)
}

func TestDarkModeWriteFailure(t *testing.T) {
	ctx := context.Background()
	sl := slotImp.NewMemory()
	svc := NewSettingsService(sl, nil)
	sl.SetFailPut(errors.New("disk full"))

	got, err := svc.SetDarkMode(ctx, true)
	assert.Error(t, err)
	assert.False(t, got.DarkMode)
}
