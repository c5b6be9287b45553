package models

import (
	"time"
)

// Device is a registered hardware unit with an optional photo and a QR code
// identifying it.
type Device struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	DeviceName       string    `gorm:"size:200;uniqueIndex;not null" json:"device_name"`
	Version          string    `gorm:"size:50;not null" json:"version"`
	Description      *string   `gorm:"type:text" json:"description"`
	ImageData        []byte    `json:"-"`
	ImageFilename    *string   `gorm:"size:255" json:"image_filename"`
	ImageContentType *string   `gorm:"size:100" json:"image_content_type"`
	QRCodeData       []byte    `gorm:"column:qr_code_data" json:"-"`
	QRPayload        *string   `gorm:"column:qr_payload;type:text" json:"qr_payload"`
	IsActive         bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasImage reports whether a device photo is stored inline.
func (d *Device) HasImage() bool {
	return len(d.ImageData) > 0
}

// HasQRCode reports whether a QR code has been generated.
func (d *Device) HasQRCode() bool {
	return len(d.QRCodeData) > 0
}
