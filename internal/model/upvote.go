package model

// Upvote records one caller's vote on one problem. The id is derived
// from the (problem, user) pair so the store's uniqueness constraint
// rejects duplicates.
type Upvote struct {
	ID        string `json:"id"`
	ProblemID string `json:"problemId"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

func (u *Upvote) DocID() string           { return u.ID }
func (u *Upvote) DocPartitionKey() string { return u.ProblemID }

func UpvoteID(problemID string, userID string) string {
	return problemID + ":" + userID
}
