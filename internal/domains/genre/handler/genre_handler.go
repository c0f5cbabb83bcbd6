package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/domains/catalog"
	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/domains/genre/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/utils"
)

type GenreHandler struct {
	service service.ServiceInterface
}

func NewGenreHandler(svc service.ServiceInterface) *GenreHandler {
	return &GenreHandler{service: svc}
}

func (h *GenreHandler) fail(c *gin.Context, err error) {
	response.FromError(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err)
}

func (h *GenreHandler) GetByID(c *gin.Context) {
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

func (h *GenreHandler) GetByName(strategy catalog.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, err := h.service.GetByName(c.Request.Context(), c.Query("name"), strategy)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.JSON(c, http.StatusOK, dto)
	}
}

func (h *GenreHandler) Create(c *gin.Context) {
	var req model.CreateGenreRequest
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

func (h *GenreHandler) Update(c *gin.Context) {
	var req model.UpdateGenreRequest
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

func (h *GenreHandler) Delete(c *gin.Context) {
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

func (h *GenreHandler) GetAll(c *gin.Context) {
	dtos, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dtos)
}

// RegisterRoutes mounts /genre/* and /genres.
func (h *GenreHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/genre/:id", h.GetByID)
	rg.GET("/genre", h.GetByName(catalog.StrategyFinder))
	rg.GET("/genre/v2", h.GetByName(catalog.StrategyRawQuery))
	rg.GET("/genre/v3", h.GetByName(catalog.StrategyPredicate))
	rg.POST("/genre/create", h.Create)
	rg.PUT("/genre/update", h.Update)
	rg.DELETE("/genre/delete/:id", h.Delete)
	rg.GET("/genres", h.GetAll)
}
