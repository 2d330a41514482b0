package model

import (
	"encoding/json"
	"strings"
)

// ValidCategories is the closed set of problem categories accepted on
// create and update.
var ValidCategories = []string{"AI/ML", "Web3", "Finance", "Governance", "Trading", "Infrastructure"}

type Problem struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements StringList `json:"requirements"`
	Category     string     `json:"category"`
	Budget       string     `json:"budget"`
	BudgetValue  float64    `json:"budgetValue"`
	Upvotes      int        `json:"upvotes"`
	Proposals    int        `json:"proposals"`
	Author       string     `json:"author"`
	AuthorID     string     `json:"authorId"`
	Deadline     string     `json:"deadline,omitempty"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

func (p *Problem) DocID() string           { return p.ID }
func (p *Problem) DocPartitionKey() string { return p.AuthorID }

func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// StringList accepts either a JSON array of strings or a single string
// split on newlines. Blank entries are dropped either way.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = cleanList(items)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*l = cleanList(strings.Split(raw, "\n"))
	return nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

type CreateProblemRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Budget       string     `json:"budget"`
	Requirements StringList `json:"requirements"`
	Author       string     `json:"author"`
	Deadline     string     `json:"deadline"`
}

// UpdateProblemRequest uses pointers so an absent field is
// distinguishable from an explicit empty value.
type UpdateProblemRequest struct {
	Title        *string     `json:"title"`
	Description  *string     `json:"description"`
	Category     *string     `json:"category"`
	Budget       *string     `json:"budget"`
	Requirements *StringList `json:"requirements"`
	Deadline     *string     `json:"deadline"`
}

type ProblemList struct {
	Problems []Problem `json:"problems"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

type SearchResults struct {
	Results    []Problem `json:"results"`
	Total      int       `json:"total"`
	SearchTerm string    `json:"searchTerm"`
}
