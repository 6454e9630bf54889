// Package dto defines the data transfer objects for the auth feature's HTTP
// transport layer.
package dto

// LoginReq represents the request body of the /auth/login endpoint.
type LoginReq struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}
