package model

type Tip struct {
	ID         string  `json:"id"`
	ProposalID string  `json:"proposalId"`
	BuilderID  string  `json:"builderId"`
	TipperID   string  `json:"tipperId"`
	Amount     float64 `json:"amount"`
	Message    string  `json:"message,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

func (t *Tip) DocID() string           { return t.ID }
func (t *Tip) DocPartitionKey() string { return t.ProposalID }

type CreateTipRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}
