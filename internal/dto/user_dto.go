package dto

type CreateUserRequest struct {
	ID           string `json:"id" validate:"required,max=128"`
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	DateOfBirth  string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	ProfileImage string `json:"profileImage,omitempty" validate:"omitempty,url"`
	Country      string `json:"country" validate:"required"`
	State        string `json:"state" validate:"required"`
}

type CreateUserResponse struct {
	Response
	UserID          string `json:"userId"`
	InvitesResolved int    `json:"invitesResolved"`
}

type ResolveInvitesResponse struct {
	Response
	InvitesResolved int `json:"invitesResolved"`
}
