package notifier

import (
	"context"
	"log/slog"
)

// Channel delivers one rendered notification to one recipient address.
// Implementations must be safe to call sequentially from the dispatcher loop.
type Channel interface {
	// Name identifies the channel in logs ("sms", "email", "push").
	Name() string

	// Send delivers the message to the recipient address for this channel
	// (phone number, email address, or device handle).
	Send(ctx context.Context, recipient string, message string) error
}

// SMSChannel sends text messages. The provider integration is stubbed; sends
// are recorded through the structured log until a gateway is wired in.
type SMSChannel struct {
	logger *slog.Logger
}

// NewSMSChannel creates the SMS channel.
func NewSMSChannel(logger *slog.Logger) SMSChannel {
	return SMSChannel{logger: logger.With("channel", "sms")}
}

// Name returns "sms".
func (c SMSChannel) Name() string { return "sms" }

// Send delivers a text message to the given phone number.
func (c SMSChannel) Send(ctx context.Context, recipient string, message string) error {
	c.logger.InfoContext(ctx, "sms sent", "recipient", recipient, "message", message)
	return nil
}

// EmailChannel sends email notifications.
type EmailChannel struct {
	logger *slog.Logger
}

// NewEmailChannel creates the email channel.
func NewEmailChannel(logger *slog.Logger) EmailChannel {
	return EmailChannel{logger: logger.With("channel", "email")}
}

// Name returns "email".
func (c EmailChannel) Name() string { return "email" }

// Send delivers a message to the given email address.
func (c EmailChannel) Send(ctx context.Context, recipient string, message string) error {
	c.logger.InfoContext(ctx, "email sent", "recipient", recipient, "message", message)
	return nil
}

// PushChannel sends push notifications to rider devices.
type PushChannel struct {
	logger *slog.Logger
}

// NewPushChannel creates the push channel.
func NewPushChannel(logger *slog.Logger) PushChannel {
	return PushChannel{logger: logger.With("channel", "push")}
}

// Name returns "push".
func (c PushChannel) Name() string { return "push" }

// Send delivers a push notification to the given device handle.
func (c PushChannel) Send(ctx context.Context, recipient string, message string) error {
	c.logger.InfoContext(ctx, "push sent", "recipient", recipient, "message", message)
	return nil
}
