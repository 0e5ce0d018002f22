package pubsub

import (
	"errors"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// The value doubles as the topic name.
type EventType string

const (
	EventRecordMatchResult EventType = "record-match-result"
)

// ErrEmptyMessage is returned for a push envelope without data.
var ErrEmptyMessage = errors.New("pubsub message has no data")

// PushEnvelope is the JSON body Pub/Sub posts to push subscriptions.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID         string            `json:"messageId"`
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes,omitempty"`
	} `json:"message"`
}
