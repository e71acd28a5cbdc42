package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: HTTP
    http:
      url: " https://example.com/2 "
      method: put
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:sa-east-1:1:readings
      region: sa-east-1
      access_key_id: AKID
      secret_access_key: secret
  - id: pubsub
    type: gcp_pubsub
    gcp_pubsub:
      project_id: hidro
      topic: readings
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 3 || enabled[0].ID != "http2" {
		t.Fatalf("expected http1 disabled, got %#v", enabled)
	}

	h, _ := reg.ByID("http2")
	if h.Type != TypeHTTP || h.HTTP.URL != "https://example.com/2" || h.HTTP.Method != "PUT" || h.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http entry not sanitized: %+v", h.HTTP)
	}

	sns, _ := reg.ByID("topic")
	if sns.SNS.AccessKeyID != "AKID" || sns.SNS.SecretAccessKey != "secret" {
		t.Fatalf("inline aws credentials not decoded: %+v", sns.SNS)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.json")
	raw := `{"publishers":[{"id":"q","type":"sqs","sqs":{"uri":"https://sqs/1/q","region":"sa-east-1"}}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if cfg, ok := reg.ByID("q"); !ok || cfg.SQS.QueueURL != "https://sqs/1/q" {
		t.Fatalf("unexpected sqs entry %+v", cfg)
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := map[string]PublisherConfig{
		"missing id":       {Type: TypeHTTP},
		"missing type":     {ID: "x"},
		"missing http":     {ID: "h1", Type: TypeHTTP},
		"missing sqs uri":  {ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{Region: "r"}},
		"missing sns arn":  {ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "r"}},
		"half credentials": {ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{TopicARN: "a", Region: "r", AWSCredentials: AWSCredentials{AccessKeyID: "k"}}},
		"missing topic":    {ID: "g", Type: TypeGCPPubSub, GCPPubSub: &GCPPubSubPublisherConfig{ProjectID: "p"}},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if err := validatePublisherConfig(cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewConfigRegistryRejectsDuplicates(t *testing.T) {
	cfg := PublisherConfig{ID: "h", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://x"}}
	if _, err := NewConfigRegistry([]PublisherConfig{cfg, cfg}); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
