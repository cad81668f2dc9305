package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shareit-market/shareit/internal/application"
	"github.com/shareit-market/shareit/pkg/response"
)

// RequestHandler handles HTTP requests for item request operations.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all request routes on the given router group.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.GetUserRequests)
		requests.GET("/all", h.GetAllRequests)
		requests.GET("/:requestId", h.GetRequest)
	}
}

// CreateRequest handles POST /requests.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRequest(c.Request.Context(), userID, body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetUserRequests handles GET /requests.
func (h *RequestHandler) GetUserRequests(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	result, err := h.service.GetUserRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetAllRequests handles GET /requests/all?from=&size=.
func (h *RequestHandler) GetAllRequests(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}
	from, ok := optionalIntQuery(c, "from")
	if !ok {
		return
	}
	size, ok := optionalIntQuery(c, "size")
	if !ok {
		return
	}

	result, err := h.service.GetAllRequests(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetRequest handles GET /requests/:requestId.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	result, err := h.service.GetRequestByID(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
