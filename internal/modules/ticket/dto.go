package ticket

type CreateTicketRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low normal high"`
	Message  string `json:"message"`
}

type AddMessageRequest struct {
	Body string `json:"body" binding:"required"`
}
