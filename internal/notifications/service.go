package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gfyup/internal/config"
)

const userAgent = "gfyup/0.1.0"

// Event names a run outcome that may be published.
type Event string

const (
	EventUploadCompleted  Event = "upload_completed"
	EventUploadFailed     Event = "upload_failed"
	EventTestNotification Event = "test"
)

// Payload carries event fields keyed by name.
type Payload map[string]any

// Service publishes events to a notification backend.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds an ntfy-backed service, or a no-op when no topic is set.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

func format(event Event, payload Payload) (message, bool) {
	source := payloadString(payload, "source")
	switch event {
	case EventUploadCompleted:
		body := fmt.Sprintf("✅ Uploaded %s: %s", source, payloadString(payload, "url"))
		if elapsed, ok := payload["elapsed"].(time.Duration); ok && elapsed > 0 {
			body = fmt.Sprintf("%s (%s)", body, elapsed.Round(time.Second))
		}
		return message{
			title: "gfyup - Upload Complete",
			body:  body,
			tags:  []string{"gfyup", "upload", "completed"},
		}, true
	case EventUploadFailed:
		var b strings.Builder
		b.WriteString("❌ Upload failed")
		if source != "" {
			b.WriteString(" for ")
			b.WriteString(source)
		}
		b.WriteString(": ")
		if errText := payloadString(payload, "error"); errText != "" {
			b.WriteString(errText)
		} else {
			b.WriteString("unknown")
		}
		return message{
			title:    "gfyup - Upload Failed",
			body:     b.String(),
			tags:     []string{"gfyup", "upload", "error"},
			priority: "high",
		}, true
	case EventTestNotification:
		return message{
			title:    "gfyup - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"gfyup", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func payloadString(payload Payload, key string) string {
	if payload == nil {
		return ""
	}
	switch v := payload[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case error:
		return strings.TrimSpace(v.Error())
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
