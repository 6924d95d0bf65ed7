package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shipwise/shipwise/internal/api/dto"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/logger"
	"github.com/shipwise/shipwise/internal/service"
)

// CalculationHandler exposes the pure engine entry points: method
// validation (both passes) and fee resolution. All semantics live in the
// services; this layer only binds and translates.
type CalculationHandler struct {
	validation service.ValidationService
	resolver   service.FeeResolverService
	log        *logger.Logger
}

func NewCalculationHandler(
	validation service.ValidationService,
	resolver service.FeeResolverService,
	log *logger.Logger,
) *CalculationHandler {
	return &CalculationHandler{
		validation: validation,
		resolver:   resolver,
		log:        log,
	}
}

func (h *CalculationHandler) ValidateMethod(c *gin.Context) {
	var req dto.ValidateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	violations := h.validation.ValidateMethod(req.Method)
	c.JSON(http.StatusOK, dto.NewViolationsResponse(violations))
}

func (h *CalculationHandler) ValidateRangeField(c *gin.Context) {
	var req dto.ValidateRangeFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	violations := h.validation.ValidateRangeField(req.Ranges, req.Index, req.Field, req.Dimension)
	c.JSON(http.StatusOK, dto.NewViolationsResponse(violations))
}

func (h *CalculationHandler) ResolveFee(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.ResolveFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	method, err := req.ToCalculationMethod()
	if err != nil {
		c.Error(err)
		return
	}

	amount, err := h.resolver.Resolve(ctx, method, req.Measurement, req.Order)
	if err != nil {
		h.log.Error("Failed to resolve fee", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ResolveFeeResponse{Amount: amount})
}
