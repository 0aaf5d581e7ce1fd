package controller

import (
	"event-api/core/controller"
	"event-api/core/errors"
	"event-api/core/middleware"
	"event-api/modules/auth/dto"
	"event-api/modules/auth/service"
	"event-api/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(authService service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
	}
}

// Register godoc
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 201 {object} controller.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /register/ [post]
func (controller *AuthController) Register(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.RegisterRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateRegisterRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	registerResponse, appErr := controller.AuthService.Register(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.CreatedResponse(c, registerResponse, "Register success")
}

// Login godoc
// @Summary Login
// @Description Exchanges email and password for an access and refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} controller.SuccessResponse{data=dto.LoginResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /login/ [post]
func (controller *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, appErr := controller.AuthService.Login(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, loginResponse, "Login success")
}

// RefreshToken godoc
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} controller.SuccessResponse{data=dto.LoginResponse}
// @Failure 400 {object} controller.ErrorResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /login/refresh/ [post]
func (controller *AuthController) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.RefreshTokenRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateRefreshTokenRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	refreshResponse, appErr := controller.AuthService.RefreshToken(ctx, requestData.Refresh)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, refreshResponse, "Refresh token success")
}

// Logout godoc
// @Summary Logout
// @Description Blacklists the access token and the optional refresh token
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest false "Refresh token"
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /logout/ [post]
func (controller *AuthController) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	claims, token, err := middleware.GetTokenClaims(c)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	requestData := new(dto.LogoutRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	if appErr := controller.AuthService.Logout(ctx, token, claims, requestData.Refresh); appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, nil, "Logout success")
}
