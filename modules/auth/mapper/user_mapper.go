package mapper

import (
	"event-api/core/dto"
	"event-api/core/utils"
	authDto "event-api/modules/auth/dto"
	"event-api/modules/auth/entity"
)

func ToUserEntity(req *authDto.RegisterRequest) *entity.User {
	return &entity.User{
		Email:     utils.NormalizeEmail(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
}

// ToUserResponse never copies the password hash.
func ToUserResponse(user *entity.User) *authDto.UserResponse {
	return &authDto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsStaff:   user.IsStaff,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func ToUserPaginationResponse(page *entity.PaginatedUserEntity) *authDto.PaginatedUserResponse {
	if page == nil {
		return dto.NewPagination[authDto.UserResponse](nil, 0, 0, 0)
	}
	items := make([]authDto.UserResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToUserResponse(&page.Items[i])
	}
	return dto.NewPagination(items, page.TotalItems, page.PageNumber, page.PageSize)
}
