package history

import (
	"encoding/json"
	"net/http"
	"time"

	"go-taxcalc/internal/middleware"
	"go-taxcalc/internal/shared/apperror"
	"go-taxcalc/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Save(c *gin.Context) {
	ctx := c.Request.Context()
	lockKey := c.GetString(middleware.IdempotencyLockKey)
	cacheKey := c.GetString(middleware.IdempotencyCacheKey)

	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(ctx, lockKey)
	}

	var req SaveCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Save(ctx, c.GetString(middleware.ValidatedUserIDKey), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			_ = h.rdb.Set(ctx, cacheKey, payload, 24*time.Hour).Err()
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var req ListHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.List(c.Request.Context(), c.GetString(middleware.ValidatedUserIDKey), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	response.Success(c, http.StatusOK, resp, &response.ListMeta{Count: len(resp), Limit: limit})
}
