package model

// ErrorResponse is the wire shape of every non-2xx body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type DeletedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
