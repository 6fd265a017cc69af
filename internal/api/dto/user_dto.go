package dto

import (
	"github.com/samadhi-app/record-service/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"pwd"`
}

// UserInfoResponse is the public view of a member profile. The password hash
// is never serialized.
type UserInfoResponse struct {
	ID       string        `json:"id"`
	Nickname string        `json:"nickname"`
	Gender   domain.Gender `json:"gender"`
	Birth    string        `json:"birth"`
	Height   float32       `json:"height"`
	Weight   float32       `json:"weight"`
	Profile  string        `json:"profile"`
}

// UserInfoFrom maps a domain user to its public view.
func UserInfoFrom(user *domain.User) UserInfoResponse {
	return UserInfoResponse{
		ID:       user.ID,
		Nickname: user.Nickname,
		Gender:   user.Gender,
		Birth:    user.Birth.Format("2006-01-02"),
		Height:   user.Height,
		Weight:   user.Weight,
		Profile:  user.ProfileURL,
	}
}
