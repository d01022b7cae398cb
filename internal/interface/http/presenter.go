package handlers

import "github.com/aryawidjaya/user-accounts/internal/domain/entity"

// UserView is the external representation of a user. The credential digest
// is deliberately absent.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func PresentUser(u *entity.User) UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email.String(),
		IsActive: u.IsActive,
	}
}

func PresentUserList(users []*entity.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, PresentUser(u))
	}
	return out
}
