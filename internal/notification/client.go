package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Level represents the severity level of a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Event identifies the workflow occurrence a notification describes.
type Event string

const (
	EventRequestApproved      Event = "asset_request_approved"
	EventRequestRejected      Event = "asset_request_rejected"
	EventConsentFullySigned   Event = "consent_form_fully_approved"
	EventTerminationApproved  Event = "termination_approved"
	EventTerminationCollected Event = "termination_assets_collected"
)

// Notifier is an interface for sending workflow notifications.
type Notifier interface {
	SendNotification(notification Notification) error
	SendNotificationWithContext(ctx context.Context, notification Notification) error
	IsHealthy(ctx context.Context) bool
}

// Notification represents the payload posted to the notification service.
type Notification struct {
	Level     Level             `json:"level"`
	Event     Event             `json:"event"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp,omitempty"`
	Source    string            `json:"source,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the notification is valid
func (n *Notification) Validate() error {
	if n.Level == "" {
		return fmt.Errorf("notification level is required")
	}
	if n.Event == "" {
		return fmt.Errorf("notification event is required")
	}
	if n.Message == "" {
		return fmt.Errorf("notification message is required")
	}
	if len(n.Message) > 1000 {
		return fmt.Errorf("notification message too long (max 1000 characters)")
	}

	switch n.Level {
	case LevelInfo, LevelWarning, LevelError:
	default:
		return fmt.Errorf("invalid notification level: %s", n.Level)
	}

	return nil
}

// Config holds configuration for the notification client
type Config struct {
	URL            string
	Timeout        time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	MaxPayloadSize int64
}

// DefaultConfig returns a default configuration for the notification client.
// A single retry on transient failure, then the error is surfaced.
func DefaultConfig(url string) Config {
	return Config{
		URL:            url,
		Timeout:        10 * time.Second,
		RetryAttempts:  1,
		RetryDelay:     time.Second,
		MaxPayloadSize: 1024 * 1024,
	}
}

type notificationClient struct {
	config Config
	client *http.Client
	logger *log.Logger
}

// NewNotifier creates a new Notifier with default configuration
func NewNotifier(url string) Notifier {
	return NewNotifierWithConfig(DefaultConfig(url))
}

// NewNotifierWithConfig creates a new Notifier with custom configuration
func NewNotifierWithConfig(config Config) Notifier {
	return &notificationClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.Default(),
	}
}

// SendNotification sends a notification, bounded by the configured timeout.
func (c *notificationClient) SendNotification(notification Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()
	return c.SendNotificationWithContext(ctx, notification)
}

// SendNotificationWithContext sends a notification, retrying transient
// failures with linear backoff. Client-side failures are not retried.
func (c *notificationClient) SendNotificationWithContext(ctx context.Context, notification Notification) error {
	if err := notification.Validate(); err != nil {
		return fmt.Errorf("invalid notification: %w", err)
	}

	if notification.Timestamp.IsZero() {
		notification.Timestamp = time.Now()
	}
	if notification.Source == "" {
		notification.Source = "asset-management-api"
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
			c.logger.Printf("Retrying notification send (attempt %d/%d)", attempt+1, c.config.RetryAttempts+1)
		}

		err := c.post(ctx, notification)
		if err == nil {
			return nil
		}

		lastErr = err
		c.logger.Printf("Notification send attempt %d failed: %v", attempt+1, err)

		if !retryable(err) {
			return err
		}
	}

	return fmt.Errorf("failed to send notification after %d attempts: %w", c.config.RetryAttempts+1, lastErr)
}

// retryable reports whether a send failure is worth another attempt. Rejected
// payloads and marshalling failures will not improve on retry.
func retryable(err error) bool {
	msg := err.Error()
	if strings.Contains(msg, "400") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "payload too large") ||
		strings.Contains(msg, "failed to marshal") {
		return false
	}
	return true
}

func (c *notificationClient) post(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if int64(len(payload)) > c.config.MaxPayloadSize {
		return fmt.Errorf("notification payload too large: %d bytes (max %d)", len(payload), c.config.MaxPayloadSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "asset-management-api/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notification service returned error status %d: %s", resp.StatusCode, string(body))
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		c.logger.Printf("Warning: unexpected status code %d from notification service", resp.StatusCode)
	}

	return nil
}

// IsHealthy checks whether the notification service answers its health
// endpoint with a non-5xx status.
func (c *notificationClient) IsHealthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "asset-management-api/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 500
}
