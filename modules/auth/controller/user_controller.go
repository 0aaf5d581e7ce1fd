package controller

import (
	"event-api/core/errors"
	"event-api/core/middleware"
	"event-api/core/params"
	"event-api/core/utils"
	"event-api/modules/auth/dto"
	"event-api/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

// ListUsers godoc
// @Summary List users
// @Description Staff only
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search in email and names"
// @Param email query string false "Exact email"
// @Param first_name query string false "Exact first name"
// @Param last_name query string false "Exact last name"
// @Success 200 {object} controller.SuccessResponse{data=dto.PaginatedUserResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /list_users/ [get]
func (controller *AuthController) ListUsers(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	queryParams := params.NewQueryParams(c, "email", "first_name", "last_name")

	users, appErr := controller.AuthService.ListUsers(c.Request().Context(), principal, *queryParams)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, users, "Get users success")
}

// GetUser godoc
// @Summary Get user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} controller.SuccessResponse{data=dto.UserResponse}
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /user/{id}/ [get]
func (controller *AuthController) GetUser(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.NotFound(errors.ErrNotFound, "User not found.")
	}

	user, appErr := controller.AuthService.GetUser(c.Request().Context(), principal, id)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, user, "Get user success")
}

// UpdateUser godoc
// @Summary Update user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Profile"
// @Success 200 {object} controller.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /user/{id}/ [put]
func (controller *AuthController) UpdateUser(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.NotFound(errors.ErrNotFound, "User not found.")
	}

	requestData := new(dto.UpdateUserRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateUpdateUserRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	user, appErr := controller.AuthService.UpdateUser(c.Request().Context(), principal, id, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, user, "Update user success")
}

// DeleteUser godoc
// @Summary Delete user
// @Tags Users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 401 {object} controller.ErrorResponse
// @Failure 403 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /user/{id}/ [delete]
func (controller *AuthController) DeleteUser(c echo.Context) error {
	principal, err := middleware.GetPrincipal(c)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	id, ok := utils.ParseUUID(c.Param("id"))
	if !ok {
		return controller.NotFound(errors.ErrNotFound, "User not found.")
	}

	if appErr := controller.AuthService.DeleteUser(c.Request().Context(), principal, id); appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.NoContentResponse(c)
}
