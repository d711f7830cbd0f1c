package servehttp

import (
	"errors"
	"net/http"
	"strconv"

	"inventech/common"
	"inventech/domain"
	"inventech/domain/assignment"
	"inventech/domain/recurrence"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func RegisterOrderFormHandler(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("/v1/order-forms", middleWares...)

	handler := &orderFormHandler{}

	g.POST("", handler.handleOpen)
	g.GET(":id", handler.handleDetail)
	g.DELETE(":id", handler.handleClose)
	g.PUT(":id/equipment-type", handler.handleSelectEquipmentType)
	g.PUT(":id/equipment", handler.handleSelectEquipment)
	g.PUT(":id/technician", handler.handleSelectTechnician)

	r.GET("/v1/recurrence-estimate", append(middleWares, handler.handleRecurrenceEstimate)...)
}

type orderFormHandler struct {
}

type formSelection struct {
	EquipmentTypeID types.ID `json:"equipmentTypeId"`
	EquipmentID     types.ID `json:"equipmentId"`
	TechnicianID    types.ID `json:"technicianId"`
}

func (h *orderFormHandler) handleOpen(c *gin.Context) {
	form, err := assignment.OpenFormFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, form.View())
}

func (h *orderFormHandler) handleDetail(c *gin.Context) {
	form := findForm(c)
	c.JSON(http.StatusOK, form.View())
}

func (h *orderFormHandler) handleClose(c *gin.Context) {
	form := findForm(c)
	assignment.CloseForm(form.ID)
	c.JSON(http.StatusNoContent, nil)
}

func (h *orderFormHandler) handleSelectEquipmentType(c *gin.Context) {
	form := findForm(c)
	selection := formSelection{}
	if err := c.ShouldBindBodyWith(&selection, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	if err := form.SelectEquipmentType(c.Request.Context(), selection.EquipmentTypeID); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, form.View())
}

func (h *orderFormHandler) handleSelectEquipment(c *gin.Context) {
	form := findForm(c)
	selection := formSelection{}
	if err := c.ShouldBindBodyWith(&selection, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	if err := form.SelectEquipment(selection.EquipmentID); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, form.View())
}

func (h *orderFormHandler) handleSelectTechnician(c *gin.Context) {
	form := findForm(c)
	selection := formSelection{}
	if err := c.ShouldBindBodyWith(&selection, binding.JSON); err != nil {
		panic(&common.ErrBadParam{Cause: err})
	}
	if err := form.SelectTechnician(selection.TechnicianID); err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, form.View())
}

func (h *orderFormHandler) handleRecurrenceEstimate(c *gin.Context) {
	intervalDays := parseIntQuery(c, "intervalDays")
	occurrenceCount := parseIntQuery(c, "occurrenceCount")

	plan, err := recurrence.PlanRecurrence(domain.RecurrencePolicy(c.Query("policy")), intervalDays, occurrenceCount)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, plan)
}

func findForm(c *gin.Context) *assignment.Form {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	form, err := assignment.FindFormFunc(parsedId)
	if err != nil {
		panic(err)
	}
	return form
}

func parseIntQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		panic(&common.ErrBadParam{Cause: errors.New("invalid " + name + " '" + raw + "'")})
	}
	return value
}
