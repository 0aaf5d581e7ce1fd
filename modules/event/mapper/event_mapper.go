package mapper

import (
	"strings"

	"event-api/core/dto"
	eventDto "event-api/modules/event/dto"
	"event-api/modules/event/entity"

	"github.com/gosimple/slug"
)

// ToEventEntity expects a request that already passed validation.
func ToEventEntity(req *eventDto.EventRequest) (*entity.Event, error) {
	date, err := dto.ParseDateTime(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, err
	}
	return &entity.Event{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Date:        date.Time,
		Location:    req.Location,
	}, nil
}

func ToEventResponse(event *entity.Event) *eventDto.EventResponse {
	return &eventDto.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Slug:        event.Slug,
		Description: event.Description,
		Date:        dto.NewDateTime(event.Date),
		Location:    event.Location,
		AtCreated:   event.CreatedAt,
		AtUpdated:   event.UpdatedAt,
	}
}

func ToEventPaginationResponse(page *entity.PaginatedEventEntity) *eventDto.PaginatedEventResponse {
	if page == nil {
		return dto.NewPagination[eventDto.EventResponse](nil, 0, 0, 0)
	}
	items := make([]eventDto.EventResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToEventResponse(&page.Items[i])
	}
	return dto.NewPagination(items, page.TotalItems, page.PageNumber, page.PageSize)
}
