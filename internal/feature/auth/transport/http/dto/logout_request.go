package dto

// LogoutReq represents the request body of the /auth/logout endpoint.
type LogoutReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
