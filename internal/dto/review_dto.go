package dto

type MarkStatusRequest struct {
	Status string `json:"status"`
}

type MarkStatusResponse struct {
	Completed bool            `json:"completed"`
	Session   SessionResponse `json:"session"`
}
