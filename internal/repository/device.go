package repository

import (
	"context"
	"errors"

	"elfatih/internal/models"
	"elfatih/internal/observability"

	"gorm.io/gorm"
)

// MaxDevicePageSize caps List.
const MaxDevicePageSize = 100

// QRRenderer renders the QR code for a persisted device.
type QRRenderer func(device *models.Device) (png []byte, payload string, err error)

// DeviceRepository defines persistence operations for devices.
type DeviceRepository interface {
	Create(ctx context.Context, device *models.Device, render QRRenderer) error
	GetByID(ctx context.Context, id uint) (*models.Device, error)
	GetByName(ctx context.Context, name string) (*models.Device, error)
	NameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Device, int64, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

// ErrDuplicateDevice is returned when a device name is already registered.
var ErrDuplicateDevice = errors.New("device name already registered")

type deviceRepository struct {
	db    *gorm.DB
	audit *observability.AuditLogger
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db, audit: observability.NewAuditLogger("device")}
}

// Create inserts the device and stores its QR code in the same transaction,
// since the code embeds the generated id.
func (r *deviceRepository) Create(ctx context.Context, device *models.Device, render QRRenderer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(device).Error; err != nil {
			return err
		}
		if render == nil {
			return nil
		}
		png, payload, err := render(device)
		if err != nil {
			return err
		}
		if err := tx.Model(device).Updates(map[string]any{
			"qr_code_data": png,
			"qr_payload":   payload,
		}).Error; err != nil {
			return err
		}
		device.QRCodeData = png
		device.QRPayload = &payload
		return nil
	})
	if isDuplicate(err) {
		return ErrDuplicateDevice
	}
	if err != nil {
		return err
	}
	r.audit.Created(ctx, device.ID, "device_name", device.DeviceName)
	return nil
}

func (r *deviceRepository) GetByID(ctx context.Context, id uint) (*models.Device, error) {
	var device models.Device
	if err := readDB(r.db).WithContext(ctx).First(&device, id).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) GetByName(ctx context.Context, name string) (*models.Device, error) {
	var device models.Device
	if err := readDB(r.db).WithContext(ctx).Where("device_name = ?", name).First(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Device{}).Where("device_name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *deviceRepository) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Device, int64, error) {
	offset, limit = clampPage(offset, limit, MaxDevicePageSize)
	base := readDB(r.db).WithContext(ctx).Model(&models.Device{})
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var devices []models.Device
	if err := base.Session(&gorm.Session{}).Order("id ASC").Offset(offset).Limit(limit).Find(&devices).Error; err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

func (r *deviceRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Device{}).Where("id = ?", id).Updates(fields)
	if isDuplicate(res.Error) {
		return ErrDuplicateDevice
	}
	return affected(res)
}

func (r *deviceRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Device{}, id)
	if err := affected(res); err != nil {
		return err
	}
	r.audit.Deleted(ctx, id)
	return nil
}
