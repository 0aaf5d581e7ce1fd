package validator

import (
	"event-api/core/params"
	"event-api/core/utils"
	"event-api/core/validator"
	"event-api/modules/participant/dto"
	"event-api/modules/participant/entity"
)

const (
	msgInvalidUUID   = "Must be a valid UUID."
	msgInvalidChoice = "is not a valid choice."
)

func ValidateParticipantRequest(req *dto.ParticipantRequest) validator.ValidationResult {
	result := validator.NewValidationResult()

	if result.Required("event", req.Event) {
		if _, ok := utils.ParseUUID(req.Event); !ok {
			result.AddError("event", msgInvalidUUID)
		}
	}
	if result.Required("member", req.Member) {
		if _, ok := utils.ParseUUID(req.Member); !ok {
			result.AddError("member", msgInvalidUUID)
		}
	}
	validateRole(result, req.Role)
	return result
}

func ValidateUpdateParticipantRequest(req *dto.UpdateParticipantRequest) validator.ValidationResult {
	result := validator.NewValidationResult()
	validateRole(result, req.Role)
	return result
}

// ValidateParticipantFilters rejects id filters that are not uuids before they reach SQL.
func ValidateParticipantFilters(p *params.QueryParams) validator.ValidationResult {
	result := validator.NewValidationResult()
	for _, key := range []string{"event", "member"} {
		if v, ok := p.Filter(key); ok {
			if _, valid := utils.ParseUUID(v); !valid {
				result.AddError(key, msgInvalidUUID)
			}
		}
	}
	return result
}

func validateRole(result validator.ValidationResult, role string) {
	if !result.Required("role", role) {
		return
	}
	if _, ok := entity.ParseRole(role); !ok {
		result.AddError("role", `"`+role+`" `+msgInvalidChoice)
	}
}
