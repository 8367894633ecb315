package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/armanhn/office-seat-reservation/internal/model"
	"github.com/armanhn/office-seat-reservation/internal/repository"
)

// AdminHandler bundles repositories for administrators to manage the
// physical layout: buildings, floors and seats.  All methods assume the
// JWT and role middleware already admitted an ADMIN.
type AdminHandler struct {
	BuildingRepo *repository.BuildingRepo
	FloorRepo    *repository.FloorRepo
	SeatRepo     *repository.SeatRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency is nil.
func NewAdminHandler(buildingRepo *repository.BuildingRepo, floorRepo *repository.FloorRepo, seatRepo *repository.SeatRepo) *AdminHandler {
	if buildingRepo == nil || floorRepo == nil || seatRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{BuildingRepo: buildingRepo, FloorRepo: floorRepo, SeatRepo: seatRepo}
}

type buildingReq struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

// CreateBuilding handles POST /v1/admin/buildings.
func (h *AdminHandler) CreateBuilding(c echo.Context) error {
	var req buildingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	b := &model.Building{Name: req.Name, Address: req.Address}
	if err := h.BuildingRepo.Create(c.Request().Context(), b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create building"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         b.ID,
		"name":       b.Name,
		"address":    b.Address,
		"created_at": b.CreatedAt,
	})
}

// UpdateBuilding handles PUT /v1/admin/buildings/:id.
func (h *AdminHandler) UpdateBuilding(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	var req buildingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.BuildingRepo.Update(c.Request().Context(), id, req.Name, req.Address); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "building not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update building"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "name": req.Name, "address": req.Address})
}

// DeleteBuilding handles DELETE /v1/admin/buildings/:id.  The building's
// floors, seats and reservations are removed in one transaction.
func (h *AdminHandler) DeleteBuilding(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	if err := h.BuildingRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "building not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete building"})
	}
	return c.NoContent(http.StatusNoContent)
}
