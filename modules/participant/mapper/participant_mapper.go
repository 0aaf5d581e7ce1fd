package mapper

import (
	"event-api/core/dto"
	participantDto "event-api/modules/participant/dto"
	"event-api/modules/participant/entity"
)

func ToParticipantResponse(p *entity.Participant) *participantDto.ParticipantResponse {
	return &participantDto.ParticipantResponse{
		ID:           p.ID,
		Event:        p.EventID,
		Member:       p.MemberID,
		Role:         p.Role.String(),
		RegisterTime: p.RegisterTime,
	}
}

func ToParticipantPaginationResponse(page *entity.PaginatedParticipantEntity) *participantDto.PaginatedParticipantResponse {
	if page == nil {
		return dto.NewPagination[participantDto.ParticipantResponse](nil, 0, 0, 0)
	}
	items := make([]participantDto.ParticipantResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToParticipantResponse(&page.Items[i])
	}
	return dto.NewPagination(items, page.TotalItems, page.PageNumber, page.PageSize)
}
