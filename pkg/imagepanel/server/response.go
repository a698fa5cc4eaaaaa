package server

import "github.com/gin-gonic/gin"

// Response is the JSON envelope of every API reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func failure(c *gin.Context, code int, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
		c.Error(err)
	}
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}
