package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"elfatih/internal/models"
	"elfatih/internal/repository"
	"elfatih/internal/storage"
	"elfatih/internal/validation"
)

const (
	DefaultDevicePerPage = 10
	MaxDevicePerPage     = repository.MaxDevicePageSize
)

// DeviceInput is the payload for a new device.
type DeviceInput struct {
	DeviceName  string  `json:"device_name" validate:"required,max=200,device_name"`
	Version     string  `json:"version" validate:"required,max=50,device_version"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

func (in *DeviceInput) normalize() {
	in.DeviceName = strings.TrimSpace(in.DeviceName)
	in.Version = strings.TrimSpace(in.Version)
	in.Description = trimOptional(in.Description)
}

// DeviceUpdateInput is a partial device update.
type DeviceUpdateInput struct {
	DeviceName  *string `json:"device_name" validate:"omitnil,min=1,max=200,device_name"`
	Version     *string `json:"version" validate:"omitnil,min=1,max=50,device_version"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	IsActive    *bool   `json:"is_active"`
}

func (in *DeviceUpdateInput) normalize() {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	in.DeviceName = trim(in.DeviceName)
	in.Version = trim(in.Version)
	in.Description = trim(in.Description)
}

// DevicePage is one page of the device list.
type DevicePage struct {
	Devices    []models.Device
	Total      int64
	Page       int
	PerPage    int
	TotalPages int
}

type DeviceService struct {
	devices repository.DeviceRepository
	images  *ImageService
	qr      *QRCodeService
	mirror  *storage.Replicator
}

func NewDeviceService(devices repository.DeviceRepository, images *ImageService, qr *QRCodeService, mirror *storage.Replicator) *DeviceService {
	return &DeviceService{devices: devices, images: images, qr: qr, mirror: mirror}
}

func deviceError(err error) error {
	if errors.Is(err, repository.ErrDuplicateDevice) {
		return models.NewConflictError("Device with this name already exists")
	}
	return translate(err, "Device")
}

func (s *DeviceService) renderer(ctx context.Context, reason string) repository.QRRenderer {
	return func(d *models.Device) ([]byte, string, error) {
		return s.qr.Encode(ctx, reason, d.ID, d.DeviceName, d.Version)
	}
}

// Create registers a device. Its QR code is generated with the new id in
// the same transaction as the insert.
func (s *DeviceService) Create(ctx context.Context, in DeviceInput) (*models.Device, error) {
	return s.create(ctx, in, nil)
}

// CreateWithImage registers a device and attaches its photo.
func (s *DeviceService) CreateWithImage(ctx context.Context, in DeviceInput, upload *ImageUpload) (*models.Device, error) {
	if upload == nil || len(upload.Content) == 0 {
		return s.create(ctx, in, nil)
	}
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	img, err := s.images.Process(ctx, ImageTargetDevice, *upload)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, in, img)
}

func (s *DeviceService) create(ctx context.Context, in DeviceInput, img *ProcessedImage) (*models.Device, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	taken, err := s.devices.NameTaken(ctx, in.DeviceName, 0)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if taken {
		return nil, models.NewConflictError("Device with this name already exists")
	}

	device := &models.Device{
		DeviceName:  in.DeviceName,
		Version:     in.Version,
		Description: in.Description,
		IsActive:    true,
	}
	if img != nil {
		device.ImageData = img.Data
		device.ImageFilename = &img.Filename
		device.ImageContentType = &img.ContentType
	}
	if err := s.devices.Create(ctx, device, s.renderer(ctx, QRReasonCreate)); err != nil {
		return nil, deviceError(err)
	}

	s.mirror.Upload(ctx, storage.ObjectKey(storage.KindDevice, device.ID, storage.NameQRCode), QRContentType, device.QRCodeData)
	if img != nil {
		s.mirror.UploadImage(ctx, storage.KindDevice, device.ID, img.Data)
	}
	return device, nil
}

func (s *DeviceService) Get(ctx context.Context, id uint) (*models.Device, error) {
	device, err := s.devices.GetByID(ctx, id)
	if err != nil {
		return nil, deviceError(err)
	}
	return device, nil
}

func (s *DeviceService) GetByName(ctx context.Context, name string) (*models.Device, error) {
	device, err := s.devices.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, deviceError(err)
	}
	return device, nil
}

// List pages through devices. page is 1-based; perPage is clamped to
// 1..MaxDevicePerPage.
func (s *DeviceService) List(ctx context.Context, page, perPage int, activeOnly bool) (*DevicePage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultDevicePerPage
	}
	if perPage > MaxDevicePerPage {
		perPage = MaxDevicePerPage
	}
	devices, total, err := s.devices.List(ctx, (page-1)*perPage, perPage, activeOnly)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &DevicePage{
		Devices:    devices,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}, nil
}

// Update applies a partial update. A changed name or version regenerates the
// QR code in the same write.
func (s *DeviceService) Update(ctx context.Context, id uint, in DeviceUpdateInput) (*models.Device, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	name, version := current.DeviceName, current.Version
	identityChanged := false
	if in.DeviceName != nil && *in.DeviceName != current.DeviceName {
		taken, err := s.devices.NameTaken(ctx, *in.DeviceName, id)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if taken {
			return nil, models.NewConflictError("Device with this name already exists")
		}
		name = *in.DeviceName
		fields["device_name"] = name
		identityChanged = true
	}
	if in.Version != nil && *in.Version != current.Version {
		version = *in.Version
		fields["version"] = version
		identityChanged = true
	}
	if in.Description != nil {
		if *in.Description == "" {
			fields["description"] = nil
		} else {
			fields["description"] = *in.Description
		}
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	var qrPNG []byte
	if identityChanged {
		png, payload, err := s.qr.Encode(ctx, QRReasonUpdate, id, name, version)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		qrPNG = png
		fields["qr_code_data"] = png
		fields["qr_payload"] = payload
	}

	if err := s.devices.Update(ctx, id, fields); err != nil {
		return nil, deviceError(err)
	}
	if qrPNG != nil {
		s.mirror.Upload(ctx, storage.ObjectKey(storage.KindDevice, id, storage.NameQRCode), QRContentType, qrPNG)
	}
	return s.Get(ctx, id)
}

func (s *DeviceService) SetImage(ctx context.Context, id uint, upload ImageUpload) (*models.Device, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	img, err := s.images.Process(ctx, ImageTargetDevice, upload)
	if err != nil {
		return nil, err
	}
	if err := s.devices.Update(ctx, id, map[string]any{
		"image_data":         img.Data,
		"image_filename":     img.Filename,
		"image_content_type": img.ContentType,
	}); err != nil {
		return nil, deviceError(err)
	}
	s.mirror.UploadImage(ctx, storage.KindDevice, id, img.Data)
	return s.Get(ctx, id)
}

func (s *DeviceService) RemoveImage(ctx context.Context, id uint) (*models.Device, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.devices.Update(ctx, id, map[string]any{
		"image_data":         nil,
		"image_filename":     nil,
		"image_content_type": nil,
	}); err != nil {
		return nil, deviceError(err)
	}
	s.mirror.DeleteImage(ctx, storage.KindDevice, id)
	return s.Get(ctx, id)
}

// Image returns the stored device photo.
func (s *DeviceService) Image(ctx context.Context, id uint) (*Blob, error) {
	device, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !device.HasImage() {
		return nil, notFound("Device image")
	}
	return &Blob{
		Data:        device.ImageData,
		Filename:    fmt.Sprintf("device_%d_image.jpg", id),
		ContentType: derefOr(device.ImageContentType, ProcessedContentType),
	}, nil
}

// RegenerateQR replaces the QR code with a freshly timestamped one.
func (s *DeviceService) RegenerateQR(ctx context.Context, id uint) (*models.Device, error) {
	device, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.storeQR(ctx, device, QRReasonRegenerate); err != nil {
		return nil, err
	}
	return device, nil
}

func (s *DeviceService) storeQR(ctx context.Context, device *models.Device, reason string) error {
	png, payload, err := s.qr.Encode(ctx, reason, device.ID, device.DeviceName, device.Version)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.devices.Update(ctx, device.ID, map[string]any{
		"qr_code_data": png,
		"qr_payload":   payload,
	}); err != nil {
		return deviceError(err)
	}
	device.QRCodeData = png
	device.QRPayload = &payload
	s.mirror.Upload(ctx, storage.ObjectKey(storage.KindDevice, device.ID, storage.NameQRCode), QRContentType, png)
	return nil
}

// QRCode returns the device's QR code, generating it first when missing.
func (s *DeviceService) QRCode(ctx context.Context, id uint) (*models.Device, error) {
	device, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !device.HasQRCode() {
		if err := s.storeQR(ctx, device, QRReasonOnDemand); err != nil {
			return nil, err
		}
	}
	return device, nil
}

func (s *DeviceService) setActive(ctx context.Context, id uint, active bool) (*models.Device, error) {
	if err := s.devices.Update(ctx, id, map[string]any{"is_active": active}); err != nil {
		return nil, deviceError(err)
	}
	return s.Get(ctx, id)
}

func (s *DeviceService) Activate(ctx context.Context, id uint) (*models.Device, error) {
	return s.setActive(ctx, id, true)
}

// SoftDelete marks the device inactive and keeps the row.
func (s *DeviceService) SoftDelete(ctx context.Context, id uint) (*models.Device, error) {
	return s.setActive(ctx, id, false)
}

// HardDelete removes the row and its mirrored objects.
func (s *DeviceService) HardDelete(ctx context.Context, id uint) error {
	if err := s.devices.Delete(ctx, id); err != nil {
		return deviceError(err)
	}
	s.mirror.DeleteImage(ctx, storage.KindDevice, id)
	s.mirror.Delete(ctx, storage.ObjectKey(storage.KindDevice, id, storage.NameQRCode))
	return nil
}
