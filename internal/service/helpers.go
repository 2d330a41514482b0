package service

import (
	"time"

	"problem-hunt-api/pkg/apierror"
)

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// requireOwner must only run after the resource is known to exist so
// not-found and forbidden stay distinct outcomes.
func requireOwner(subject string, ownerID string, message string) error {
	if subject != ownerID {
		return apierror.Forbidden(message)
	}
	return nil
}

func clampPage(limit int, offset int) (int, int) {
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func pageBounds(total int, limit int, offset int) (int, int) {
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}
