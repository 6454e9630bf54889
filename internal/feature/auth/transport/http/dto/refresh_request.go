package dto

// RefreshReq represents the request body of the /auth/refresh endpoint.
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
