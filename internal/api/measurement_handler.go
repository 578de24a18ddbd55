package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/pt-crm/internal/domain"
	"alcyxob/pt-crm/internal/service"

	"github.com/gin-gonic/gin"
)

// MeasurementHandler holds the measurement service dependency.
type MeasurementHandler struct {
	measurementService service.MeasurementService
}

// NewMeasurementHandler creates a new MeasurementHandler.
func NewMeasurementHandler(measurementService service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService}
}

// --- Request/Response Structs ---

// MeasurementRequest carries the metric fields. Every metric is optional; a
// snapshot with only a weight is fine. MetricValue tolerates both wire
// encodings (number and decimal string).
type MeasurementRequest struct {
	Date       *time.Time  `json:"date"`
	WeightKg   MetricValue `json:"weightKg"`
	BodyFatPct MetricValue `json:"bodyFatPct"`
	ChestCm    MetricValue `json:"chestCm"`
	WaistCm    MetricValue `json:"waistCm"`
	HipsCm     MetricValue `json:"hipsCm"`
	ArmCm      MetricValue `json:"armCm"`
	ThighCm    MetricValue `json:"thighCm"`
	Notes      string      `json:"notes"`
}

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmPhotoRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	ContentType string `json:"contentType"`
}

// --- Handler Methods ---

// CreateMeasurement handles POST /clients/:clientId/measurements.
func (h *MeasurementHandler) CreateMeasurement(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	measurement := measurementFromRequest(&req)
	measurement.ClientID = clientID

	created, err := h.measurementService.Create(c.Request.Context(), actor, measurement)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMeasurements handles GET /clients/:clientId/measurements.
func (h *MeasurementHandler) ListMeasurements(c *gin.Context) {
	clientID, ok := parseObjectID(c, "clientId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	measurements, err := h.measurementService.ListForClient(c.Request.Context(), actor, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, measurements)
}

// GetMeasurement handles GET /measurements/:measurementId.
func (h *MeasurementHandler) GetMeasurement(c *gin.Context) {
	id, ok := parseObjectID(c, "measurementId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	measurement, err := h.measurementService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, measurement)
}

// UpdateMeasurement handles PUT /measurements/:measurementId.
func (h *MeasurementHandler) UpdateMeasurement(c *gin.Context) {
	id, ok := parseObjectID(c, "measurementId")
	if !ok {
		return
	}
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	measurement := measurementFromRequest(&req)
	measurement.ID = id

	updated, err := h.measurementService.Update(c.Request.Context(), actor, measurement)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMeasurement handles DELETE /measurements/:measurementId.
func (h *MeasurementHandler) DeleteMeasurement(c *gin.Context) {
	id, ok := parseObjectID(c, "measurementId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	if err := h.measurementService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestPhotoUploadURL handles POST /measurements/:measurementId/photo/upload-url.
// Returns a presigned PUT URL; the client uploads directly to object storage.
func (h *MeasurementHandler) RequestPhotoUploadURL(c *gin.Context) {
	id, ok := parseObjectID(c, "measurementId")
	if !ok {
		return
	}
	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	upload, err := h.measurementService.RequestPhotoUploadURL(c.Request.Context(), actor, id, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

// ConfirmPhotoUpload handles POST /measurements/:measurementId/photo/confirm.
func (h *MeasurementHandler) ConfirmPhotoUpload(c *gin.Context) {
	id, ok := parseObjectID(c, "measurementId")
	if !ok {
		return
	}
	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	actor := actorFromContext(c)

	measurement, err := h.measurementService.ConfirmPhotoUpload(c.Request.Context(), actor, id, req.ObjectKey, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, measurement)
}

// GetPhotoDownloadURL handles GET /measurements/:measurementId/photo.
func (h *MeasurementHandler) GetPhotoDownloadURL(c *gin.Context) {
	id, ok := parseObjectID(c, "measurementId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	downloadURL, err := h.measurementService.GetPhotoDownloadURL(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}

func measurementFromRequest(req *MeasurementRequest) *domain.Measurement {
	m := &domain.Measurement{
		WeightKg:   req.WeightKg.Float(),
		BodyFatPct: req.BodyFatPct.Float(),
		ChestCm:    req.ChestCm.Float(),
		WaistCm:    req.WaistCm.Float(),
		HipsCm:     req.HipsCm.Float(),
		ArmCm:      req.ArmCm.Float(),
		ThighCm:    req.ThighCm.Float(),
		Notes:      req.Notes,
	}
	if req.Date != nil {
		m.Date = *req.Date
	}
	return m
}
