package validator

import (
	"event-api/core/validator"
	"event-api/modules/auth/dto"
)

const (
	maxFirstNameLength = 50
	maxLastNameLength  = 70
	maxEmailLength     = 254
	minPasswordLength  = 8
	maxPasswordLength  = 128
)

func ValidateRegisterRequest(req *dto.RegisterRequest) validator.ValidationResult {
	result := validator.NewValidationResult()

	validateProfile(result, req.Email, req.FirstName, req.LastName)
	if result.Required("password", req.Password) {
		result.MinLength("password", req.Password, minPasswordLength)
		result.MaxLength("password", req.Password, maxPasswordLength)
	}
	return result
}

func ValidateLoginRequest(req *dto.LoginRequest) validator.ValidationResult {
	result := validator.NewValidationResult()
	if result.Required("email", req.Email) {
		result.Email("email", req.Email)
	}
	result.Required("password", req.Password)
	return result
}

func ValidateRefreshTokenRequest(req *dto.RefreshTokenRequest) validator.ValidationResult {
	result := validator.NewValidationResult()
	result.Required("refresh", req.Refresh)
	return result
}

func ValidateUpdateUserRequest(req *dto.UpdateUserRequest) validator.ValidationResult {
	result := validator.NewValidationResult()

	validateProfile(result, req.Email, req.FirstName, req.LastName)
	if req.Password != "" {
		result.MinLength("password", req.Password, minPasswordLength)
		result.MaxLength("password", req.Password, maxPasswordLength)
	}
	return result
}

func validateProfile(result validator.ValidationResult, email, firstName, lastName string) {
	if result.Required("email", email) {
		if result.MaxLength("email", email, maxEmailLength) {
			result.Email("email", email)
		}
	}
	if result.Required("first_name", firstName) {
		result.MaxLength("first_name", firstName, maxFirstNameLength)
	}
	if result.Required("last_name", lastName) {
		result.MaxLength("last_name", lastName, maxLastNameLength)
	}
}
