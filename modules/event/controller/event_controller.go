package controller

import (
	"event-api/core/controller"
	"event-api/core/errors"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/core/utils"
	"event-api/modules/event/dto"
	"event-api/modules/event/service"
	"event-api/modules/event/validator"
	permissionService "event-api/modules/permission/service"

	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	service service.EventServiceInterface
}

func NewEventController(service service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// GetEvents godoc
// @Summary List events
// @Description Paginated events, filtered by search, title and location
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search in title and location"
// @Param title query string false "Exact title"
// @Param location query string false "Exact location"
// @Success 200 {object} controller.SuccessResponse{data=dto.PaginatedEventResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Router /events/ [get]
func (ctrl *EventController) GetEvents(c echo.Context) error {
	queryParams := params.NewQueryParams(c, "title", "location")

	events, appErr := ctrl.service.GetEvents(c.Request().Context(), *queryParams)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, events, "Get events success")
}

// CreateEvent godoc
// @Summary Create event
// @Description Creates an event and makes the caller its organizer
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EventRequest true "Event"
// @Success 201 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /events/ [post]
func (ctrl *EventController) CreateEvent(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	requestData := new(dto.EventRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateEventRequest(requestData)
	if validationResult.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	event, appErr := ctrl.service.CreateEvent(c.Request().Context(), principal, requestData)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.CreatedResponse(c, event, "Create event success")
}

// GetEvent godoc
// @Summary Get event
// @Tags Events
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /event/{id}/ [get]
func (ctrl *EventController) GetEvent(c echo.Context) error {
	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return ctrl.NotFound(errors.ErrNotFound, permissionService.MsgEventNotFound)
	}

	event, appErr := ctrl.service.GetEvent(c.Request().Context(), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, event, "Get event success")
}

// UpdateEvent godoc
// @Summary Update event
// @Description Organizers of the event and staff only
// @Tags Events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.EventRequest true "Event"
// @Success 200 {object} controller.SuccessResponse{data=dto.EventResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /event/{id}/ [put]
func (ctrl *EventController) UpdateEvent(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return ctrl.NotFound(errors.ErrNotFound, permissionService.MsgEventNotFound)
	}

	requestData := new(dto.EventRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateEventRequest(requestData)
	if validationResult.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	event, appErr := ctrl.service.UpdateEvent(c.Request().Context(), principal, id, requestData)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, event, "Update event success")
}

// DeleteEvent godoc
// @Summary Delete event
// @Description Organizers of the event and staff only. Participations are removed with it.
// @Tags Events
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 204
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /event/{id}/ [delete]
func (ctrl *EventController) DeleteEvent(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return ctrl.NotFound(errors.ErrNotFound, permissionService.MsgEventNotFound)
	}

	if appErr := ctrl.service.DeleteEvent(c.Request().Context(), principal, id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.NoContentResponse(c)
}
