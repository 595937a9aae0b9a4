package handler

import (
	"time"

	"invite-auth/shared/models"
)

type validateInviteCodeRequest struct {
	InviteCode string `json:"inviteCode"`
}

type validateInviteCodeResponse struct {
	Valid bool `json:"valid"`
}

type registerRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	InviteCode string `json:"inviteCode"`
	Email      string `json:"email,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// createInviteCodeRequest: every field is optional. ExpireDate is YYYY-MM-DD.
type createInviteCodeRequest struct {
	Code       string  `json:"code"`
	MaxUses    *int    `json:"maxUses"`
	ExpireDate *string `json:"expireDate"`
}

type userResponse struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Avatar        string     `json:"avatar"`
	Email         *string    `json:"email"`
	Roles         []string   `json:"roles"`
	LastLoginTime *time.Time `json:"lastLoginTime"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type inviteCodeResponse struct {
	Code       string  `json:"code"`
	MaxUses    int     `json:"maxUses"`
	Used       int     `json:"used"`
	Status     string  `json:"status"`
	ExpireDate *string `json:"expireDate"`
	CreatedAt  string  `json:"createdAt"`
	CreatedBy  *string `json:"createdBy"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:            u.ID.String(),
		Username:      u.Username,
		Avatar:        u.Avatar,
		Email:         u.Email,
		Roles:         u.Roles,
		LastLoginTime: u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

func newInviteCodeResponse(ic *models.InviteCode) inviteCodeResponse {
	resp := inviteCodeResponse{
		Code:      ic.Code,
		MaxUses:   ic.MaxUses,
		Used:      ic.Used,
		Status:    string(ic.Status),
		CreatedAt: ic.CreatedAt.UTC().Format(time.RFC3339),
	}
	if ic.ExpireDate != nil {
		d := ic.ExpireDate.UTC().Format(time.DateOnly)
		resp.ExpireDate = &d
	}
	if ic.CreatedBy != nil {
		id := ic.CreatedBy.String()
		resp.CreatedBy = &id
	}
	return resp
}
