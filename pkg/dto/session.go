package dto

type SessionRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type SessionResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}
