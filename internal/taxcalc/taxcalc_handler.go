package taxcalc

import (
	"net/http"

	"go-taxcalc/internal/shared/apperror"
	"go-taxcalc/internal/shared/contextutil"
	"go-taxcalc/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("taxcalc.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("taxcalc.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		contextutil.GetLogger(c.Request.Context(), h.logger).Error("calculation failed", zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return false
	}
	return true
}

func (h *Handler) CalculatePAYE(c *gin.Context) {
	var req CalculatePAYERequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.PAYE(req.Input())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CalculateVAT(c *gin.Context) {
	var req CalculateVATRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.VAT(req.Input())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CalculateNIS(c *gin.Context) {
	var req CalculateNISRequest
	if !h.bind(c, &req) {
		return
	}

	resp, err := h.service.NIS(req.Input())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CalculateSalary(c *gin.Context) {
	var req CalculateSalaryRequest
	if !h.bind(c, &req) {
		return
	}

	in := req.Input()
	resp, err := h.service.FullSalary(in)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	contextutil.GetLogger(c.Request.Context(), h.logger).Debug("salary calculated",
		zap.String("frequency", string(in.Frequency)),
		zap.Float64("gross_monthly", resp.GrossMonthly),
		zap.Float64("net_monthly", resp.NetPay.Monthly),
	)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetTaxRates(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Rates(), nil)
}
