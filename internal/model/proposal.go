package model

const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
)

type Proposal struct {
	ID            string     `json:"id"`
	ProblemID     string     `json:"problemId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ProjectURL    string     `json:"projectUrl,omitempty"`
	BuilderID     string     `json:"builderId"`
	BuilderName   string     `json:"builderName"`
	BriefSolution string     `json:"briefSolution"`
	Timeline      string     `json:"timeline,omitempty"`
	Cost          float64    `json:"cost,omitempty"`
	Expertise     StringList `json:"expertise"`
	Status        string     `json:"status"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

func (p *Proposal) DocID() string           { return p.ID }
func (p *Proposal) DocPartitionKey() string { return p.ProblemID }

type CreateProposalRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ProjectURL    string     `json:"projectUrl"`
	BuilderName   string     `json:"builderName"`
	BriefSolution string     `json:"briefSolution"`
	Timeline      string     `json:"timeline"`
	Cost          float64    `json:"cost"`
	Expertise     StringList `json:"expertise"`
}

type ProposalList struct {
	Proposals []Proposal `json:"proposals"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

// UserProposal is a proposal enriched for the owner's dashboard view.
type UserProposal struct {
	Proposal
	ProblemTitle string  `json:"problemTitle"`
	TipTotal     float64 `json:"tipTotal"`
}

type UserProposalList struct {
	Proposals []UserProposal `json:"proposals"`
	Total     int            `json:"total"`
}
