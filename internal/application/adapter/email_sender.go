// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BuddyNotifier queues buddy workflow notifications.
type BuddyNotifier interface {
	// NotifyBuddyRequest tells the receiver about a new request.
	NotifyBuddyRequest(ctx context.Context, input BuddyRequestNotification) error

	// NotifyBuddyAccepted tells the requester their request was accepted.
	NotifyBuddyAccepted(ctx context.Context, input BuddyAcceptedNotification) error
}

// BuddyRequestNotification carries the data for a new request email.
type BuddyRequestNotification struct {
	RequesterName  string
	RequesterEmail string
	ReceiverName   string
	ReceiverEmail  string
}

// BuddyAcceptedNotification carries the data for an accepted request email.
type BuddyAcceptedNotification struct {
	RequesterName  string
	RequesterEmail string
	ReceiverName   string
}
