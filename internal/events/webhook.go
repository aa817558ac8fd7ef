package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sage/config"
	"sage/shared/constant"
	"time"
)

// webhookClient posts intents to a configured provider endpoint. Both the
// notification provider and the meeting provider are plain webhooks; their
// internals are outside this subsystem.
type webhookClient struct {
	url    string
	client *http.Client
}

func newWebhookClient(url string, timeoutSeconds int) webhookClient {
	return webhookClient{
		url: url,
		client: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
	}
}

func (w webhookClient) post(ctx context.Context, intent Intent) error {
	raw, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal intent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build provider request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("provider rejected intent: status %d", resp.StatusCode)
	}

	return nil
}

type webhookNotifier struct {
	webhookClient
}

func NewWebhookNotifier(cfg *config.Config) Notifier {
	return &webhookNotifier{
		webhookClient: newWebhookClient(cfg.Providers.NotificationURL, cfg.Providers.TimeoutSeconds),
	}
}

func (n *webhookNotifier) Notify(ctx context.Context, intent Intent) error {
	return n.post(ctx, intent)
}

type webhookScheduler struct {
	webhookClient
}

func NewWebhookScheduler(cfg *config.Config) Scheduler {
	return &webhookScheduler{
		webhookClient: newWebhookClient(cfg.Providers.MeetingURL, cfg.Providers.TimeoutSeconds),
	}
}

func (s *webhookScheduler) Schedule(ctx context.Context, intent Intent) error {
	return s.post(ctx, intent)
}
