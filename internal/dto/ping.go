// File: internal/dto/ping.go
package dto

// swagger:model dto.PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}
