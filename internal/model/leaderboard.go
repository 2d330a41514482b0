package model

type LeaderboardEntry struct {
	Rank               int     `json:"rank"`
	BuilderID          string  `json:"builderId"`
	BuilderName        string  `json:"builderName"`
	ProposalsSubmitted int     `json:"proposalsSubmitted"`
	ProposalsAccepted  int     `json:"proposalsAccepted"`
	TipsReceived       float64 `json:"tipsReceived"`
	ReputationScore    int     `json:"reputationScore"`
	Tier               string  `json:"tier"`
}

type Leaderboard struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Total       int                `json:"total"`
	Period      string             `json:"period"`
}
