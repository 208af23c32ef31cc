package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"player_bonus_service/internal/auth"
	"player_bonus_service/internal/bonus"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BonusHandler struct {
	service bonus.LifecycleService
	logger  *zap.Logger
}

func NewBonusHandler(service bonus.LifecycleService, logger *zap.Logger) *BonusHandler {
	return &BonusHandler{service: service, logger: logger}
}

// GetAll returns one page of bonuses, newest first.
// GET /api/bonus/all?page=&pageSize=
func (h *BonusHandler) GetAll(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(bonus.DefaultPage)))
	if err != nil {
		writeProblem(c, http.StatusBadRequest, "page must be an integer")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(bonus.DefaultPageSize)))
	if err != nil {
		writeProblem(c, http.StatusBadRequest, "pageSize must be an integer")
		return
	}

	result, err := h.service.GetAllPaged(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/bonus/:id
func (h *BonusHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/bonus/create
func (h *BonusHandler) Create(c *gin.Context) {
	var req bonus.CreateBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeProblem(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), auth.PrincipalFrom(c), req.PlayerID, req.BonusType, req.Amount)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/bonus/%d", resp.ID))
	c.JSON(http.StatusCreated, resp)
}

// PUT /api/bonus/update/:id
func (h *BonusHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req bonus.UpdateBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeProblem(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), auth.PrincipalFrom(c), id, req.Amount, req.IsActive)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete answers 204 whether or not the bonus existed.
// DELETE /api/bonus/delete/:id
func (h *BonusHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), auth.PrincipalFrom(c), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeProblem(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
