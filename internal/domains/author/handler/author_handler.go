package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

func (h *AuthorHandler) fail(c *gin.Context, err error) {
	response.FromError(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		h.fail(c, model.ErrInvalidID)
		return
	}

	dto, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /author?surname=, /author/v2?surname=, /author/v3?surname=
// ════════════════════════════════════════════════════════════════

// GetBySurname returns a handler bound to one lookup strategy.
func (h *AuthorHandler) GetBySurname(strategy catalog.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, err := h.service.GetBySurname(c.Request.Context(), c.Query("surname"), strategy)
		if err != nil {
			h.fail(c, err)
			return
		}

		response.JSON(c, http.StatusOK, dto)
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /author/create
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /author/update
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dto)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /author/delete/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		h.fail(c, model.ErrInvalidID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAll(c *gin.Context) {
	dtos, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dtos)
}

// RegisterRoutes mounts the author endpoints on rg.
func (h *AuthorHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/author/:id", h.GetByID)
	rg.GET("/author", h.GetBySurname(catalog.StrategyFinder))
	rg.GET("/author/v2", h.GetBySurname(catalog.StrategyRawQuery))
	rg.GET("/author/v3", h.GetBySurname(catalog.StrategyPredicate))
	rg.POST("/author/create", h.Create)
	rg.PUT("/author/update", h.Update)
	rg.DELETE("/author/delete/:id", h.Delete)
	rg.GET("/authors", h.GetAll)
}
