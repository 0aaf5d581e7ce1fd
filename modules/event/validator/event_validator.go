package validator

import (
	"strings"

	"event-api/core/dto"
	"event-api/core/validator"
	eventDto "event-api/modules/event/dto"
)

const (
	maxTitleLength    = 120
	maxLocationLength = 150
)

func ValidateEventRequest(req *eventDto.EventRequest) validator.ValidationResult {
	result := validator.NewValidationResult()

	if result.Required("title", req.Title) {
		result.MaxLength("title", req.Title, maxTitleLength)
	}
	result.Required("description", req.Description)
	if result.Required("location", req.Location) {
		result.MaxLength("location", req.Location, maxLocationLength)
	}
	if result.Required("date", req.Date) {
		if _, err := dto.ParseDateTime(strings.TrimSpace(req.Date)); err != nil {
			result.AddError("date", "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DD hh:mm:ss.")
		}
	}
	return result
}
