package model

import "time"

// MaxTextLength bounds question and choice text
const MaxTextLength = 200

// RecentWindow is how far back a publish date still counts as recent
const RecentWindow = 24 * time.Hour

// Question represents a poll question
type Question struct {
	ID           int
	QuestionText string
	PubDate      time.Time
}

// IsPublished reports whether the question's publish date has been reached
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently reports whether the question was published within the
// last 24 hours. Questions dated in the future are never recent.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return q.IsPublished(now) && !q.PubDate.Before(now.Add(-RecentWindow))
}
