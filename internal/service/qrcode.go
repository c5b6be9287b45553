package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"elfatih/internal/observability"

	qrcode "github.com/skip2/go-qrcode"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// QRModulePixels is the edge length of one QR module in the PNG.
	QRModulePixels    = 10
	QRContentType     = "image/png"
	qrPayloadTypeName = "device"
)

// QR generation reasons, used as the metrics label.
const (
	QRReasonCreate     = "create"
	QRReasonUpdate     = "update"
	QRReasonRegenerate = "regenerate"
	QRReasonOnDemand   = "on_demand"
)

// DeviceQRPayload is the JSON document embedded in a device QR symbol.
type DeviceQRPayload struct {
	DeviceID    uint   `json:"device_id"`
	DeviceName  string `json:"device_name"`
	Version     string `json:"version"`
	Type        string `json:"type"`
	GeneratedAt string `json:"generated_at"`
}

type QRCodeService struct {
	now func() time.Time
}

func NewQRCodeService() *QRCodeService {
	return &QRCodeService{now: time.Now}
}

// Encode renders the device identity as a PNG QR code with low error
// correction and the standard four-module quiet zone.
func (s *QRCodeService) Encode(ctx context.Context, reason string, deviceID uint, name, version string) (_ []byte, _ string, err error) {
	_, span := observability.StartSpan(ctx, "QRCodeService", "Encode",
		attribute.Int64("device.id", int64(deviceID)),
		attribute.String("qr.reason", reason),
	)
	defer span.Finish(&err)

	payload, err := json.Marshal(DeviceQRPayload{
		DeviceID:    deviceID,
		DeviceName:  name,
		Version:     version,
		Type:        qrPayloadTypeName,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, "", fmt.Errorf("marshal qr payload: %w", err)
	}

	code, err := qrcode.New(string(payload), qrcode.Low)
	if err != nil {
		return nil, "", fmt.Errorf("build qr code: %w", err)
	}
	// A negative size sets the pixel width of each module.
	png, err := code.PNG(-QRModulePixels)
	if err != nil {
		return nil, "", fmt.Errorf("encode qr png: %w", err)
	}

	observability.QRCodesGenerated.WithLabelValues(reason).Inc()
	return png, string(payload), nil
}

// ParseDeviceQRPayload decodes a payload previously produced by Encode.
func ParseDeviceQRPayload(raw string) (*DeviceQRPayload, error) {
	var p DeviceQRPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("parse qr payload: %w", err)
	}
	return &p, nil
}
