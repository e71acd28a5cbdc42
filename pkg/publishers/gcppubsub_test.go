package publishers

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestGCPPubSubPublisherPublishes(t *testing.T) {
	// In-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()
	if _, err := client.CreateTopic(ctx, "readings"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newGCPPubSubPublisher(ctx, PublisherConfig{
		ID:        "pubsub",
		Type:      TypeGCPPubSub,
		GCPPubSub: &GCPPubSubPublisherConfig{ProjectID: "test-project", Topic: "readings"},
	}, nil)
	if err != nil {
		t.Fatalf("newGCPPubSubPublisher: %v", err)
	}
	defer pub.(closer).Close()

	if err := pub.Publish(ctx, sampleEvent()); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message on the emulator, got %d", len(msgs))
	}
	if msgs[0].Attributes["station_code"] != "15400000" {
		t.Fatalf("unexpected attributes %v", msgs[0].Attributes)
	}
	var evt Event
	if err := json.Unmarshal(msgs[0].Data, &evt); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if evt.Reading.Values["nivel"] != "312" {
		t.Fatalf("unexpected payload %+v", evt)
	}
}
