package model

import (
	"strings"
	"time"
)

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePush    WebhookEventType = "push"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Ref        string           // Git ref the push targeted (e.g. refs/heads/main)
	Repository string           // Repository full name (owner/name)
	CloneURL   string           // HTTPS clone URL of the repository
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// IsReleaseCandidate reports whether the event is a push to the given branch
func (e *WebhookEvent) IsReleaseCandidate(branch string) bool {
	return e.Type == EventTypePush && e.Ref == "refs/heads/"+branch
}

// Owner returns the owner part of the repository full name
func (e *WebhookEvent) Owner() string {
	owner, _, _ := strings.Cut(e.Repository, "/")
	return owner
}

// Repo returns the name part of the repository full name
func (e *WebhookEvent) Repo() string {
	_, repo, _ := strings.Cut(e.Repository, "/")
	return repo
}
