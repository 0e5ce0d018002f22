package pubsub

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type payload struct {
	TenantID string `msgpack:"tenant_id"`
	WinnerID string `msgpack:"winner_id"`
}

func TestDecodePushEnvelope(t *testing.T) {
	raw, err := msgpack.Marshal(payload{TenantID: "club-a", WinnerID: "alice"})
	require.NoError(t, err)

	body := `{"subscription":"projects/p/subscriptions/s","message":{"messageId":"42","data":"` +
		base64.StdEncoding.EncodeToString(raw) + `"}}`

	data, err := DecodePushEnvelope([]byte(body))
	require.NoError(t, err)

	var got payload
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, payload{TenantID: "club-a", WinnerID: "alice"}, got)
}

func TestDecodePushEnvelope_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "nope"},
		{name: "no data", body: `{"message":{}}`},
		{name: "bad base64", body: `{"message":{"data":"!!!"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePushEnvelope([]byte(tt.body))
			assert.Error(t, err)
		})
	}

	_, err := DecodePushEnvelope([]byte(`{"message":{}}`))
	assert.ErrorIs(t, err, ErrEmptyMessage)
}
