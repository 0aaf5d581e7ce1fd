package controller

import (
	"event-api/core/controller"
	"event-api/core/errors"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/core/utils"
	"event-api/modules/participant/dto"
	"event-api/modules/participant/service"
	"event-api/modules/participant/validator"
	permissionService "event-api/modules/permission/service"

	"github.com/labstack/echo/v4"
)

type ParticipantController struct {
	controller.BaseController
	service service.ParticipantServiceInterface
}

func NewParticipantController(service service.ParticipantServiceInterface) *ParticipantController {
	return &ParticipantController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// GetParticipants godoc
// @Summary List participants
// @Tags Participants
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search in event title, member email and role"
// @Param event query string false "Event ID"
// @Param member query string false "Member ID"
// @Param role query string false "member or organizer"
// @Success 200 {object} controller.SuccessResponse{data=dto.PaginatedParticipantResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /participants/ [get]
func (ctrl *ParticipantController) GetParticipants(c echo.Context) error {
	queryParams := params.NewQueryParams(c, "event", "member", "role")

	validationResult := validator.ValidateParticipantFilters(queryParams)
	if validationResult.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid query parameters", validationResult)
	}

	participants, appErr := ctrl.service.GetParticipants(c.Request().Context(), *queryParams)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, participants, "Get participants success")
}

// CreateParticipant godoc
// @Summary Join event
// @Description Registers a member to an event. Joining as member queues a confirmation email.
// @Tags Participants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ParticipantRequest true "Participation"
// @Success 201 {object} controller.SuccessResponse{data=dto.ParticipantResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /participants/ [post]
func (ctrl *ParticipantController) CreateParticipant(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	requestData := new(dto.ParticipantRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateParticipantRequest(requestData)
	if validationResult.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	participant, appErr := ctrl.service.CreateParticipant(c.Request().Context(), principal, requestData)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.CreatedResponse(c, participant, "Successful entrance")
}

// GetParticipant godoc
// @Summary Get participant
// @Tags Participants
// @Security BearerAuth
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.ParticipantResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /participants/{id}/ [get]
func (ctrl *ParticipantController) GetParticipant(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return ctrl.NotFound(errors.ErrNotFound, permissionService.MsgParticipantNotFound)
	}

	participant, appErr := ctrl.service.GetParticipant(c.Request().Context(), principal, id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, participant, "Get participant success")
}

// UpdateParticipant godoc
// @Summary Change participant role
// @Tags Participants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Participant ID"
// @Param request body dto.UpdateParticipantRequest true "Role"
// @Success 200 {object} controller.SuccessResponse{data=dto.ParticipantResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /participants/{id}/ [put]
func (ctrl *ParticipantController) UpdateParticipant(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return ctrl.NotFound(errors.ErrNotFound, permissionService.MsgParticipantNotFound)
	}

	requestData := new(dto.UpdateParticipantRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateUpdateParticipantRequest(requestData)
	if validationResult.HasError() {
		return ctrl.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	participant, appErr := ctrl.service.UpdateParticipant(c.Request().Context(), principal, id, requestData)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, participant, "Update participant success")
}

// DeleteParticipant godoc
// @Summary Leave event
// @Tags Participants
// @Security BearerAuth
// @Param id path string true "Participant ID"
// @Success 204
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /participants/{id}/ [delete]
func (ctrl *ParticipantController) DeleteParticipant(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return ctrl.NotFound(errors.ErrNotFound, permissionService.MsgParticipantNotFound)
	}

	if appErr := ctrl.service.DeleteParticipant(c.Request().Context(), principal, id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.NoContentResponse(c)
}
