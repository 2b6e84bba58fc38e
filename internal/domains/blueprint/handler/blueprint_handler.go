package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"blueprints-backend/internal/domains/blueprint/model"
	"blueprints-backend/internal/domains/blueprint/service"
	"blueprints-backend/internal/shared/response"
)

type BlueprintHandler struct {
	service service.ServiceInterface
}

func NewBlueprintHandler(svc service.ServiceInterface) *BlueprintHandler {
	return &BlueprintHandler{
		service: svc,
	}
}

// RegisterRoutes mounts the blueprint endpoints on rg (normally /api/v1)
func (h *BlueprintHandler) RegisterRoutes(rg *gin.RouterGroup) {
	blueprints := rg.Group("/blueprints")
	{
		blueprints.GET("", h.GetAll)
		blueprints.POST("", h.Create)
		blueprints.GET("/:author", h.GetByAuthor)
		blueprints.GET("/:author/:name", h.GetByAuthorAndName)
		blueprints.PUT("/:author/:name/points", h.AddPoint)
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GetAll - GET /api/v1/blueprints
// ════════════════════════════════════════════════════════════════

func (h *BlueprintHandler) GetAll(c *gin.Context) {
	bps, err := h.service.GetAllBlueprints(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, bps)
}

// ════════════════════════════════════════════════════════════════
// READ: GetByAuthor - GET /api/v1/blueprints/:author
// ════════════════════════════════════════════════════════════════

func (h *BlueprintHandler) GetByAuthor(c *gin.Context) {
	bps, err := h.service.GetBlueprintsByAuthor(c.Request.Context(), c.Param("author"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, bps)
}

// ════════════════════════════════════════════════════════════════
// READ: GetByAuthorAndName - GET /api/v1/blueprints/:author/:name
// ════════════════════════════════════════════════════════════════

func (h *BlueprintHandler) GetByAuthorAndName(c *gin.Context) {
	bp, err := h.service.GetBlueprint(c.Request.Context(), c.Param("author"), c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, bp)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/blueprints
// ════════════════════════════════════════════════════════════════

func (h *BlueprintHandler) Create(c *gin.Context) {
	var req model.CreateBlueprintRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MessageInvalidRequest, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, response.MessageInvalidRequest, validationDetails(err))
		return
	}

	bp := req.ToEntity()
	if err := h.service.AddNewBlueprint(c.Request.Context(), bp); err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, response.MessageCreated, bp)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: AddPoint - PUT /api/v1/blueprints/:author/:name/points
// ════════════════════════════════════════════════════════════════

func (h *BlueprintHandler) AddPoint(c *gin.Context) {
	var req model.PointRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.MessageInvalidRequest, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.BadRequest(c, response.MessageInvalidRequest, validationDetails(err))
		return
	}

	p := req.ToPoint()
	if err := h.service.AddPoint(c.Request.Context(), c.Param("author"), c.Param("name"), p.X, p.Y); err != nil {
		h.handleError(c, err)
		return
	}

	response.Accepted(c, response.MessagePointAdded)
}

// handleError maps domain errors to their status; anything else is a 500
// whose cause stays in the log.
func (h *BlueprintHandler) handleError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Blueprint request failed")
		response.InternalServerError(c)
		return
	}

	response.Error(c, status, err.Error())
}

// validationDetails keeps per-field messages when ozzo produced them directly
func validationDetails(err error) any {
	if fields, ok := err.(validation.Errors); ok {
		return fields
	}
	return err.Error()
}
