package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

func (h *BookHandler) fail(c *gin.Context, err error) {
	response.FromError(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err)
}

// GetByID - GET /book/:id
func (h *BookHandler) GetByID(c *gin.Context) {
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

// GetByName - GET /book?name=, /book/v2?name=, /book/v3?name=
func (h *BookHandler) GetByName(strategy catalog.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, err := h.service.GetByName(c.Request.Context(), c.Query("name"), strategy)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.JSON(c, http.StatusOK, dto)
	}
}

// Create - POST /book/create
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
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

// Update - PUT /book/update
func (h *BookHandler) Update(c *gin.Context) {
	var req model.UpdateBookRequest
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

// Delete - DELETE /book/delete/:id
func (h *BookHandler) Delete(c *gin.Context) {
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

// GetAll - GET /books
func (h *BookHandler) GetAll(c *gin.Context) {
	dtos, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dtos)
}

func (h *BookHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/book/:id", h.GetByID)
	rg.GET("/book", h.GetByName(catalog.StrategyFinder))
	rg.GET("/book/v2", h.GetByName(catalog.StrategyRawQuery))
	rg.GET("/book/v3", h.GetByName(catalog.StrategyPredicate))
	rg.POST("/book/create", h.Create)
	rg.PUT("/book/update", h.Update)
	rg.DELETE("/book/delete/:id", h.Delete)
	rg.GET("/books", h.GetAll)
}
