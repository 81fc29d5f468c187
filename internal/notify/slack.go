package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magnetlabs/watchtower/internal/domain"
)

// Slack posts a Block Kit alert to an incoming-webhook URL.
type Slack struct {
	Webhook string
	Client  *http.Client

	// now is swappable for tests.
	now func() time.Time
}

func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
}

type slackMessage struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Send builds and delivers one alert covering all failures of a run.
// With no failures it returns immediately without touching the network.
func (s *Slack) Send(ctx context.Context, failures []domain.CheckOutcome) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}
	if len(failures) == 0 {
		return nil
	}

	now := s.now
	if now == nil {
		now = time.Now
	}
	body, err := json.Marshal(buildAlert(failures, now().UTC()))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack webhook status %s", resp.Status)
	}
	return nil
}

// headline reads "1 domain is down" or "N domains are down".
func headline(n int) string {
	verb := "s are"
	if n == 1 {
		verb = " is"
	}
	return fmt.Sprintf("Uptime Alert: %d domain%s down", n, verb)
}

func buildAlert(failures []domain.CheckOutcome, now time.Time) slackMessage {
	head := headline(len(failures))

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: head},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: "*Check Time:* " + now.Format("2006-01-02 15:04:05") + " UTC"},
		},
		{Type: "divider"},
	}

	for _, f := range failures {
		errText := "Unknown error"
		if f.Error != nil {
			errText = *f.Error
		}
		var ms int64
		if f.ResponseTimeMS != nil {
			ms = *f.ResponseTimeMS
		}
		blocks = append(blocks, slackBlock{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Domain:*\n" + f.Name},
				{Type: "mrkdwn", Text: "*Error:*\n" + errText},
				{Type: "mrkdwn", Text: fmt.Sprintf("*URL:*\n<%s|%s>", f.URL, f.URL)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Response Time:*\n%dms", ms)},
			},
		})
	}

	return slackMessage{
		Text:   "🚨 *" + head + "*",
		Blocks: blocks,
	}
}
