package e

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Shared response envelope
type Response struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg"`
	Field string      `json:"field,omitempty"`
	Data  interface{} `json:"data"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: Success,
		Msg:  "success",
		Data: data,
	})
}

func ErrorResponse(c *gin.Context, err error) {
	var bizErr *Error
	if errors.As(err, &bizErr) {
		c.JSON(http.StatusOK, Response{
			Code:  bizErr.Code,
			Msg:   bizErr.Msg,
			Field: bizErr.Field,
			Data:  nil,
		})
		return
	}
	log.Printf("[system error]URI :%s|Error :%v\n", c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, Response{
		Code: ErrorServer,
		Msg:  "internal server error",
		Data: nil,
	})
}
