package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := `
publishers:
  - id: hook
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: queue
    type: SQS
    sqs:
      queue_url: " https://sqs.eu-west-1.amazonaws.com/1/q "
      region: eu-west-1
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:eu-west-1:1:t
      region: eu-west-1
  - id: gcp
    type: pubsub
    pubsub:
      project_id: p
      topic: exposures
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 3 || enabled[0].ID != "queue" {
		t.Fatalf("expected hook to be filtered out, got %#v", enabled)
	}

	q, ok := reg.ByID("queue")
	if !ok || q.Type != TypeSQS || q.SQS.QueueURL != "https://sqs.eu-west-1.amazonaws.com/1/q" {
		t.Fatalf("unexpected queue config: %#v", q)
	}
	hook, _ := reg.ByID("hook")
	if hook.HTTP.Method != httpDefaultMethod || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected http defaults, got %#v", hook.HTTP)
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := map[string]PublisherConfig{
		"missing id":     {Type: TypeHTTP},
		"missing type":   {ID: "x"},
		"missing http":   {ID: "x", Type: TypeHTTP},
		"missing region": {ID: "x", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "q"}},
		"missing arn":    {ID: "x", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "r"}},
		"missing topic":  {ID: "x", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p"}},
	}
	for name, cfg := range cases {
		if err := validatePublisherConfig(sanitizePublisherConfig(cfg)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestNewConfigRegistryDuplicateID(t *testing.T) {
	hook := PublisherConfig{ID: "a", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}}
	if _, err := NewConfigRegistry([]PublisherConfig{hook, hook}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}
