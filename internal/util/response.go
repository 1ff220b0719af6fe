package util

import "github.com/gin-gonic/gin"

// JSON endpoints share one wire shape: a "status" field that is either
// "success" or "error", plus endpoint-specific payload keys.

// OK writes a success response, merging any extra payload keys.
func OK(c *gin.Context, data gin.H) {
	body := gin.H{"status": "success"}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(200, body)
}

// Fail writes an error response. msg may be empty, in which case only
// the status field is sent.
func Fail(c *gin.Context, httpStatus int, msg string) {
	body := gin.H{"status": "error"}
	if msg != "" {
		body["message"] = msg
	}
	c.JSON(httpStatus, body)
}
