package request_models

type CartItem struct {
	TicketID uint `json:"ticket_id" binding:"required"`
	Qty      int  `json:"qty" binding:"required,gt=0"`
}

type CreateTransactionRequest struct {
	Items []CartItem `json:"items" binding:"required"`
}

const (
	DecisionAccept = "ACCEPT"
	DecisionReject = "REJECT"
)

type DecideTransactionRequest struct {
	Type string `json:"type" binding:"required,oneof=ACCEPT REJECT"`
}
