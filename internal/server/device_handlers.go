package server

import (
	"fmt"
	"net/url"
	"strings"

	"elfatih/internal/models"
	"elfatih/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListDevices handles GET /api/v1/devices
// @Summary List devices
// @Tags devices
// @Produce json
// @Param page query int false "1-based page" default(1)
// @Param per_page query int false "Page size (max 100)" default(10)
// @Param active_only query bool false "Only active devices" default(true)
// @Param include_images query bool false "Embed base64 photos" default(true)
// @Success 200 {object} DeviceListResponse
// @Router /devices [get]
func (s *Server) ListDevices(c *fiber.Ctx) error {
	page, err := s.deviceService.List(c.UserContext(),
		c.QueryInt("page", 1),
		c.QueryInt("per_page", service.DefaultDevicePerPage),
		queryBool(c, "active_only", true))
	if err != nil {
		return respondServiceError(c, err)
	}
	includeImages := queryBool(c, "include_images", true)
	out := DeviceListResponse{
		Devices:    make([]DeviceResponse, 0, len(page.Devices)),
		Total:      page.Total,
		Page:       page.Page,
		PerPage:    page.PerPage,
		TotalPages: page.TotalPages,
	}
	for i := range page.Devices {
		out.Devices = append(out.Devices, toDeviceResponse(&page.Devices[i], includeImages))
	}
	return c.JSON(out)
}

// CreateDevice handles POST /api/v1/devices
// @Summary Register device (admin)
// @Description A QR code identifying the device is generated on creation.
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.DeviceInput true "Device"
// @Success 201 {object} DeviceResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Device name already exists (duplicates are 409, not 400)"
// @Router /devices [post]
func (s *Server) CreateDevice(c *fiber.Ctx) error {
	var in service.DeviceInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	device, err := s.deviceService.Create(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDeviceResponse(device, false))
}

// CreateDeviceWithImage handles POST /api/v1/devices/with-image
// @Summary Register device with a photo (admin)
// @Tags devices
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param device_name formData string true "Name"
// @Param version formData string true "Version"
// @Param description formData string false "Description"
// @Param image formData file false "Photo"
// @Success 201 {object} DeviceResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Device name already exists (duplicates are 409, not 400)"
// @Router /devices/with-image [post]
func (s *Server) CreateDeviceWithImage(c *fiber.Ctx) error {
	in := service.DeviceInput{
		DeviceName: c.FormValue("device_name"),
		Version:    c.FormValue("version"),
	}
	if desc := c.FormValue("description"); strings.TrimSpace(desc) != "" {
		in.Description = &desc
	}
	upload, err := readUpload(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}
	device, err := s.deviceService.CreateWithImage(c.UserContext(), in, upload)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDeviceResponse(device, false))
}

// GetDevice handles GET /api/v1/devices/:id
// @Summary Get device
// @Tags devices
// @Produce json
// @Param id path int true "Device ID"
// @Param include_images query bool false "Embed base64 photo" default(true)
// @Success 200 {object} DeviceResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /devices/{id} [get]
func (s *Server) GetDevice(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	device, err := s.deviceService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toDeviceResponse(device, queryBool(c, "include_images", true)))
}

// GetDeviceByName handles GET /api/v1/devices/name/:name
// @Summary Get device by name
// @Tags devices
// @Produce json
// @Param name path string true "Device name"
// @Success 200 {object} DeviceResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /devices/name/{name} [get]
func (s *Server) GetDeviceByName(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid device name"))
	}
	device, err := s.deviceService.GetByName(c.UserContext(), name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toDeviceResponse(device, queryBool(c, "include_images", true)))
}

// UpdateDevice handles PUT /api/v1/devices/:id
// @Summary Update device (admin)
// @Description Changing the name or version regenerates the QR code.
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Param request body service.DeviceUpdateInput true "Fields to change"
// @Success 200 {object} DeviceResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse "Device name already exists (duplicates are 409, not 400)"
// @Router /devices/{id} [put]
func (s *Server) UpdateDevice(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	var in service.DeviceUpdateInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	device, err := s.deviceService.Update(c.UserContext(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toDeviceResponse(device, false))
}

// GetDeviceImage handles GET /api/v1/devices/:id/image
// @Summary Device photo
// @Tags devices
// @Produce image/jpeg
// @Param id path int true "Device ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /devices/{id}/image [get]
func (s *Server) GetDeviceImage(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	blob, err := s.deviceService.Image(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return sendBlob(c, blob, false)
}

// SetDeviceImage handles PUT /api/v1/devices/:id/image
// @Summary Replace device photo (admin)
// @Tags devices
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Param image formData file true "Photo"
// @Success 200 {object} DeviceResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /devices/{id}/image [put]
func (s *Server) SetDeviceImage(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	upload, err := requireUpload(c, "image")
	if err != nil {
		return respondServiceError(c, err)
	}
	device, err := s.deviceService.SetImage(c.UserContext(), id, *upload)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toDeviceResponse(device, false))
}

// RemoveDeviceImage handles DELETE /api/v1/devices/:id/image
// @Summary Remove device photo (admin)
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Success 200 {object} DeviceResponse
// @Router /devices/{id}/image [delete]
func (s *Server) RemoveDeviceImage(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	device, err := s.deviceService.RemoveImage(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toDeviceResponse(device, false))
}

// GetDeviceQRCode handles GET /api/v1/devices/:id/qr-code
// @Summary Device QR code as PNG
// @Description Generated on first request when the device has none.
// @Tags devices
// @Produce image/png
// @Param id path int true "Device ID"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /devices/{id}/qr-code [get]
func (s *Server) GetDeviceQRCode(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	device, err := s.deviceService.QRCode(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return sendBlob(c, &service.Blob{
		Data:        device.QRCodeData,
		Filename:    fmt.Sprintf("device_%d_qr.png", device.ID),
		ContentType: service.QRContentType,
	}, false)
}

// GetDeviceQRInfo handles GET /api/v1/devices/:id/qr-code/info
// @Summary QR code URL and decoded payload
// @Tags devices
// @Produce json
// @Param id path int true "Device ID"
// @Success 200 {object} object{device_id=int,qr_code_url=string,qr_code_data=service.DeviceQRPayload}
// @Failure 404 {object} models.ErrorResponse
// @Router /devices/{id}/qr-code/info [get]
func (s *Server) GetDeviceQRInfo(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	device, err := s.deviceService.QRCode(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	var payload *service.DeviceQRPayload
	if device.QRPayload != nil {
		payload, err = service.ParseDeviceQRPayload(*device.QRPayload)
		if err != nil {
			return respondServiceError(c, models.NewInternalError(err))
		}
	}
	return c.JSON(fiber.Map{
		"device_id":    device.ID,
		"qr_code_url":  deviceQRCodeURL(device.ID),
		"qr_code_data": payload,
	})
}

// RegenerateDeviceQR handles POST /api/v1/devices/:id/regenerate-qr
// @Summary Regenerate QR code (admin)
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Success 200 {object} DeviceResponse
// @Router /devices/{id}/regenerate-qr [post]
func (s *Server) RegenerateDeviceQR(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	device, err := s.deviceService.RegenerateQR(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toDeviceResponse(device, false))
}

// ActivateDevice handles POST /api/v1/devices/:id/activate
// @Summary Reactivate a soft-deleted device (admin)
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Success 200 {object} DeviceResponse
// @Router /devices/{id}/activate [post]
func (s *Server) ActivateDevice(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	device, err := s.deviceService.Activate(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(toDeviceResponse(device, false))
}

// SoftDeleteDevice handles DELETE /api/v1/devices/:id
// @Summary Deactivate device (admin)
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Success 200 {object} object{message=string,device=DeviceResponse}
// @Router /devices/{id} [delete]
func (s *Server) SoftDeleteDevice(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	device, err := s.deviceService.SoftDelete(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Device deactivated successfully",
		"device":  toDeviceResponse(device, false),
	})
}

// HardDeleteDevice handles DELETE /api/v1/devices/:id/hard-delete
// @Summary Permanently delete device (admin)
// @Tags devices
// @Security BearerAuth
// @Param id path int true "Device ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /devices/{id}/hard-delete [delete]
func (s *Server) HardDeleteDevice(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return nil
	}
	if err := s.deviceService.HardDelete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
