package gateway

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shareit-market/shareit/internal/domain/booking"
	"github.com/shareit-market/shareit/pkg/response"
)

// Handler validates incoming requests and forwards the well-formed ones
// to the main service. Bad input is rejected here with 400, before it
// ever reaches the core.
type Handler struct {
	client *Client
}

// NewHandler creates a gateway handler over the forwarding client.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes registers the full public surface on the router group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings("/bookings"))
		bookings.GET("/owner", h.listBookings("/bookings/owner"))
		bookings.GET("/:bookingId", h.forwardWithID("/bookings", "bookingId"))
		bookings.PATCH("/:bookingId", h.decideBooking)
	}

	items := r.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.pagedForward("/items"))
		items.GET("/search", h.searchItems)
		items.GET("/:itemId", h.forwardWithID("/items", "itemId"))
		items.PATCH("/:itemId", h.patchItem)
		items.POST("/:itemId/comment", h.addComment)
	}

	users := r.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.forwardPlain(http.MethodGet, "/users"))
		users.GET("/:userId", h.forwardUser(http.MethodGet))
		users.PATCH("/:userId", h.patchUser)
		users.DELETE("/:userId", h.forwardUser(http.MethodDelete))
	}

	requests := r.Group("/requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.authedForward(http.MethodGet, "/requests"))
		requests.GET("/all", h.pagedForward("/requests/all"))
		requests.GET("/:requestId", h.forwardWithID("/requests", "requestId"))
	}
}

type bookingBody struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (h *Handler) createBooking(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var body bookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	now := time.Now()
	if body.Start == nil || body.End == nil ||
		body.Start.Before(now) || !body.End.After(now) ||
		!body.End.After(*body.Start) {
		response.BadRequest(c, "Wrong date!")
		return
	}

	h.relay(c, http.MethodPost, "/bookings", &userID, nil, body)
}

func (h *Handler) decideBooking(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		response.BadRequest(c, "invalid approved")
		return
	}

	query := url.Values{"approved": {c.Query("approved")}}
	h.relay(c, http.MethodPatch, "/bookings/"+c.Param("bookingId"), &userID, query, nil)
}

// listBookings validates the state filter and paging before forwarding.
// Unknown states are rejected here with 400, unlike the main service
// which keeps the original 500 contract.
func (h *Handler) listBookings(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.userID(c)
		if !ok {
			return
		}

		state := c.DefaultQuery("state", "ALL")
		if _, err := booking.ParseStateFilter(state); err != nil {
			response.BadRequest(c, "Unknown state: "+state)
			return
		}
		query, ok := h.pagingQuery(c)
		if !ok {
			return
		}
		query.Set("state", state)

		h.relay(c, http.MethodGet, path, &userID, query, nil)
	}
}

type itemBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func (h *Handler) createItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var body itemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		response.BadRequest(c, "Item name is required!")
		return
	}
	if strings.TrimSpace(body.Description) == "" {
		response.BadRequest(c, "Item description is required!")
		return
	}
	if body.Available == nil {
		response.BadRequest(c, "No available field!")
		return
	}

	h.relay(c, http.MethodPost, "/items", &userID, nil, body)
}

func (h *Handler) patchItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.relay(c, http.MethodPatch, "/items/"+c.Param("itemId"), &userID, nil, body)
}

func (h *Handler) searchItems(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	query, ok := h.pagingQuery(c)
	if !ok {
		return
	}
	query.Set("text", c.Query("text"))

	h.relay(c, http.MethodGet, "/items/search", &userID, query, nil)
}

func (h *Handler) addComment(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		response.BadRequest(c, "Comment text is required!")
		return
	}

	h.relay(c, http.MethodPost, "/items/"+c.Param("itemId")+"/comment", &userID, nil, body)
}

type userBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) createUser(c *gin.Context) {
	var body userBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if body.Email == "" || !strings.Contains(body.Email, "@") {
		response.BadRequest(c, "Wrong email!")
		return
	}

	h.relay(c, http.MethodPost, "/users", nil, nil, body)
}

func (h *Handler) patchUser(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if email, present := body["email"]; present {
		s, isString := email.(string)
		if !isString || s == "" || !strings.Contains(s, "@") {
			response.BadRequest(c, "Wrong email!")
			return
		}
	}

	h.relay(c, http.MethodPatch, "/users/"+c.Param("userId"), nil, nil, body)
}

func (h *Handler) createRequest(c *gin.Context) {
	userID, ok := h.userID(c)
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
	if strings.TrimSpace(body.Description) == "" {
		response.BadRequest(c, "Request description is required!")
		return
	}

	h.relay(c, http.MethodPost, "/requests", &userID, nil, body)
}

func (h *Handler) forwardWithID(base, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.userID(c)
		if !ok {
			return
		}
		h.relay(c, http.MethodGet, base+"/"+c.Param(param), &userID, nil, nil)
	}
}

func (h *Handler) forwardUser(method string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.relay(c, method, "/users/"+c.Param("userId"), nil, nil, nil)
	}
}

func (h *Handler) forwardPlain(method, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.relay(c, method, path, nil, nil, nil)
	}
}

func (h *Handler) authedForward(method, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.userID(c)
		if !ok {
			return
		}
		h.relay(c, method, path, &userID, nil, nil)
	}
}

func (h *Handler) pagedForward(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := h.userID(c)
		if !ok {
			return
		}
		query, ok := h.pagingQuery(c)
		if !ok {
			return
		}
		h.relay(c, http.MethodGet, path, &userID, query, nil)
	}
}

// userID requires a well-formed sharer header. Unlike the main service,
// the gateway treats a missing header as the client's fault.
func (h *Handler) userID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader("X-Sharer-User-Id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil {
		response.BadRequest(c, "No header with user id!")
		return 0, false
	}
	return id, true
}

// pagingQuery validates optional from/size parameters: from must be
// non-negative, size strictly positive.
func (h *Handler) pagingQuery(c *gin.Context) (url.Values, bool) {
	query := url.Values{}
	for _, name := range []string{"from", "size"} {
		raw, present := c.GetQuery(name)
		if !present {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid "+name)
			return nil, false
		}
		if (name == "from" && v < 0) || (name == "size" && v <= 0) {
			response.BadRequest(c, "Parameters should be natural!")
			return nil, false
		}
		query.Set(name, raw)
	}
	return query, true
}

func (h *Handler) relay(c *gin.Context, method, path string, userID *int64, query url.Values, body any) {
	result, err := h.client.Forward(c.Request.Context(), method, path, userID, query, body)
	if err != nil {
		c.JSON(http.StatusBadGateway, response.ErrorBody{Error: "upstream unavailable"})
		return
	}
	c.Data(result.Status, "application/json", result.Body)
}
