package bizerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"inventech/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = fmt.Errorf("%s", ret)
		}
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func HandleError(c *gin.Context, err error) {
	logrus.Error(err)

	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	if bizErr, ok := genericErr.(common.BizError); ok {
		respond := bizErr.Respond()
		c.JSON(respond.Status, &common.ErrorBody{Code: respond.Code, Message: respond.Message, Data: respond.Data})
		c.Abort()
		return
	}

	// bad request: io.EOF (no body).
	if errors.Is(genericErr, io.EOF) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.body_not_found", Message: "body not found"})
		c.Abort()
		return
	}
	// bad request: json syntax error
	if syntaxErr, ok := genericErr.(*json.SyntaxError); ok {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: syntaxErr.Error()})
		c.Abort()
		return
	}
	// validation failed
	if validationErr, ok := genericErr.(validator.ValidationErrors); ok {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.validation_failed", Message: "validation failed", Data: validationErr.Error()})
		c.Abort()
		return
	}

	if errors.Is(genericErr, ErrCatalogUnavailable) {
		c.JSON(http.StatusServiceUnavailable, &common.ErrorBody{Code: "catalog.unavailable", Message: "catalog unavailable"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrEquipmentFetchFailed) {
		c.JSON(http.StatusBadGateway, &common.ErrorBody{Code: "catalog.equipment_fetch_failed", Message: "equipment fetch failed"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrInvalidRecurrenceInterval) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "recurrence.invalid_interval", Message: "custom recurrence requires an interval of at least one day"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrUnknownRecurrencePolicy) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "recurrence.unknown_policy", Message: "unknown recurrence policy"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrInvalidTransition) {
		c.JSON(http.StatusConflict, &common.ErrorBody{Code: "workorder.invalid_transition", Message: "invalid transition"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrEquipmentPoolLoading) {
		c.JSON(http.StatusConflict, &common.ErrorBody{Code: "assignment.equipment_pool_loading", Message: "equipment pool is loading"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrUnknownState) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "workorder.unknown_state", Message: "unknown state"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrNotFound) || errors.Is(genericErr, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, &common.ErrorBody{Code: "common.record_not_found", Message: "record not found"})
		c.Abort()
		return
	}

	c.JSON(http.StatusInternalServerError, &common.ErrorBody{Code: "common.internal_server_error", Message: err.Error()})
	c.Abort()
}
