package queue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	models "github.com/suncar/seeder/models"
)

// WebhookQueue posts messages as {"message": <payload>} to an HTTP endpoint.
type WebhookQueue struct {
	Url    string
	Key    string
	Client *http.Client
}

func CreateWebhookQueue(connection models.Queue) (*WebhookQueue, error) {
	if connection.Url == "" {
		return nil, errors.New("webhook: url is required")
	}
	return &WebhookQueue{
		Url:    strings.TrimSuffix(connection.Url, "/"),
		Key:    connection.Key,
		Client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (q *WebhookQueue) post(target string, payload string) error {
	var jsonStr = []byte(`{"message": ` + payload + `}`)
	req, err := http.NewRequest(http.MethodPost, target, bytes.NewBuffer(jsonStr))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if q.Key != "" {
		req.Header.Set("X-Seeder-Key", q.Key)
	}
	resp, err := q.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook %s returned %d: %s", target, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// SendMessage posts to <url>/<queueName>, or to the url itself when no
// queue name is given.
func (q *WebhookQueue) SendMessage(queueName string, payload string, delay int) error {
	target := q.Url
	if queueName != "" {
		target = q.Url + "/" + strings.TrimPrefix(queueName, "/")
	}
	return q.post(target, payload)
}

// Test checks the target url without sending anything.
func (q *WebhookQueue) Test(queueName string) error {
	target := q.Url
	if queueName != "" {
		target = q.Url + "/" + strings.TrimPrefix(queueName, "/")
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("webhook: %s is not an http(s) url", target)
	}
	return nil
}

func (q *WebhookQueue) Close() {

}
