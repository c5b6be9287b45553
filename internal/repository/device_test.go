package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"elfatih/internal/models"
	"elfatih/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeQR(d *models.Device) ([]byte, string, error) {
	return []byte("png"), fmt.Sprintf(`{"device_id":%d}`, d.ID), nil
}

func TestDeviceRepository_CreateStoresQRWithID(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	d := &models.Device{DeviceName: "Sensor-A", Version: "1.0"}
	require.NoError(t, repo.Create(ctx, d, fakeQR))
	require.NotZero(t, d.ID)

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), got.QRCodeData)
	require.NotNil(t, got.QRPayload)
	assert.Equal(t, fmt.Sprintf(`{"device_id":%d}`, d.ID), *got.QRPayload)
	assert.True(t, got.IsActive)
}

func TestDeviceRepository_CreateRollsBackWhenQRFails(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Device{DeviceName: "Sensor-B", Version: "1.0"}, func(*models.Device) ([]byte, string, error) {
		return nil, "", errors.New("encoder exploded")
	})
	require.Error(t, err)

	_, err = repo.GetByName(ctx, "Sensor-B")
	assert.True(t, IsNotFound(err))
}

func TestDeviceRepository_DuplicateName(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	a := &models.Device{DeviceName: "Gateway", Version: "1.0"}
	b := &models.Device{DeviceName: "Relay", Version: "1.0"}
	require.NoError(t, repo.Create(ctx, a, nil))
	require.NoError(t, repo.Create(ctx, b, nil))

	err := repo.Create(ctx, &models.Device{DeviceName: "Gateway", Version: "2.0"}, nil)
	assert.ErrorIs(t, err, ErrDuplicateDevice)

	err = repo.Update(ctx, b.ID, map[string]any{"device_name": "Gateway"})
	assert.ErrorIs(t, err, ErrDuplicateDevice)

	taken, err := repo.NameTaken(ctx, "Gateway", a.ID)
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = repo.NameTaken(ctx, "Gateway", b.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestDeviceRepository_ListPaginatesWithTotal(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d := &models.Device{DeviceName: fmt.Sprintf("Unit %d", i), Version: "1.0"}
		require.NoError(t, repo.Create(ctx, d, nil))
		if i == 4 {
			require.NoError(t, repo.Update(ctx, d.ID, map[string]any{"is_active": false}))
		}
	}

	page, total, err := repo.List(ctx, 2, 2, true)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, page, 2)
	assert.Equal(t, "Unit 2", page[0].DeviceName)

	_, total, err = repo.List(ctx, 0, 10, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestDeviceRepository_Delete(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewDeviceRepository(db)
	ctx := context.Background()

	d := &models.Device{DeviceName: "Temp", Version: "0.1"}
	require.NoError(t, repo.Create(ctx, d, nil))
	require.NoError(t, repo.Delete(ctx, d.ID))
	assert.True(t, IsNotFound(repo.Delete(ctx, d.ID)))
	assert.True(t, IsNotFound(repo.Update(ctx, d.ID, map[string]any{"version": "0.2"})))
}
