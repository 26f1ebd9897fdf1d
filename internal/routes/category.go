package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/robsonsvicero/financassimples/internal/contracts"
	"github.com/robsonsvicero/financassimples/internal/domain/category"
	appErrors "github.com/robsonsvicero/financassimples/internal/errors"
	"github.com/robsonsvicero/financassimples/internal/pkg"
)

func (h *Handler) CreateCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req contracts.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.CategoryService.Create(c.Request.Context(), &category.CreateCategoryRequest{
		UserId: userID,
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
		Kind:   category.Kind(req.Type),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CategoryResponse{Category: entity})
}

func (h *Handler) ListCategories(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categories, err := h.CategoryService.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryListResponse{Categories: categories, Total: len(categories)})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var req contracts.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.CategoryService.Update(c.Request.Context(), userID, categoryID, req.Name, req.Icon, req.Color)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CategoryResponse{Category: entity})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	categoryID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.CategoryService.Delete(c.Request.Context(), userID, categoryID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Categoria removida com sucesso"})
}
