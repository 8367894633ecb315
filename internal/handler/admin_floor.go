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

type createFloorReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateFloorReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// CreateFloor handles POST /v1/admin/buildings/:id/floors.
func (h *AdminHandler) CreateFloor(c echo.Context) error {
	buildingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || buildingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid building id"})
	}
	ctx := c.Request().Context()
	if _, err := h.BuildingRepo.GetByID(ctx, buildingID); err != nil {
		if errors.Is(err, repository.ErrBuildingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "building not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var req createFloorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	f := &model.Floor{BuildingID: buildingID, Name: req.Name, Description: req.Description}
	if err := h.FloorRepo.Create(ctx, f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create floor"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":          f.ID,
		"building_id": f.BuildingID,
		"name":        f.Name,
		"description": f.Description,
		"is_active":   f.IsActive,
	})
}

// UpdateFloor handles PUT /v1/admin/floors/:id.  Omitting is_active keeps
// the current value.
func (h *AdminHandler) UpdateFloor(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	ctx := c.Request().Context()
	f, err := h.FloorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFloorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var req updateFloorReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		f.Name = name
	}
	if req.Description != nil {
		f.Description = req.Description
	}
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if err := h.FloorRepo.Update(ctx, f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update floor"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":          f.ID,
		"building_id": f.BuildingID,
		"name":        f.Name,
		"description": f.Description,
		"is_active":   f.IsActive,
	})
}

// DeleteFloor handles DELETE /v1/admin/floors/:id.  Deletion is refused
// with 409 while seats on the floor still carry active upcoming
// reservations.
func (h *AdminHandler) DeleteFloor(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	if err := h.FloorRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "floor has active upcoming reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete floor"})
	}
	return c.NoContent(http.StatusNoContent)
}
