package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shareit-market/shareit/pkg/response"
)

// SharerHeader carries the acting user's id on every authenticated route.
const SharerHeader = "X-Sharer-User-Id"

// sharerID extracts the acting user's id from the request header. A
// missing or malformed header is a server-side contract violation with
// the gateway, so it is reported as 500, not 400.
func sharerID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(SharerHeader)
	id, err := strconv.ParseInt(raw, 10, 64)
	if raw == "" || err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorBody{Error: "No header with user id!"})
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// optionalIntQuery parses a query parameter that may be absent. Absent
// yields nil; a present but non-numeric value answers 400.
func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return nil, false
	}
	return &v, true
}
