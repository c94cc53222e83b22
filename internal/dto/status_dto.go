package dto

import "time"

type StatusResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Storage   string `json:"storage"`
	AiEnabled bool   `json:"ai_enabled"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Storage   string    `json:"storage"`
	AiEnabled bool      `json:"ai_enabled"`
}
