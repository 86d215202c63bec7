package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_Channel(t *testing.T) {
	tests := []struct {
		kind     Kind
		channel  Channel
		feedback bool
	}{
		{KindAccountCreationConfirmed, ChannelCreationFeedback, true},
		{KindAccountCreationFailed, ChannelCreationFeedback, true},
		{KindMoneyTransferConfirmed, ChannelTransferFeedback, true},
		{KindMoneyTransferFailed, ChannelTransferFeedback, true},
		{KindBalanceChanged, ChannelBalanceChange, false},
		{Kind("Bogus"), ChannelUnknown, false},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.channel, tc.kind.Channel())
			assert.Equal(t, tc.feedback, tc.kind.IsFeedback())
		})
	}
}

func TestRecord_Payload(t *testing.T) {
	id := uuid.New()

	p, err := NewMoneyTransferFailed(id, "invalid token").Payload()
	require.NoError(t, err)
	fb, ok := p.(*MoneyTransferFeedback)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, fb.Status)
	assert.Equal(t, "invalid token", fb.Reason)

	_, err = Record{Kind: KindBalanceChanged}.Payload()
	assert.Error(t, err)

	_, err = Record{Kind: "Bogus"}.Payload()
	assert.Error(t, err)
}

func TestFeedback_WireShape(t *testing.T) {
	id := uuid.MustParse("6f1c3b1e-8a0d-4b6e-9d7f-2c5a4e3b1a00")

	raw, err := json.Marshal(NewMoneyTransferConfirmed(id).TransferFeedback)
	require.NoError(t, err)
	assert.JSONEq(t, `{"commandId":"6f1c3b1e-8a0d-4b6e-9d7f-2c5a4e3b1a00","status":"confirmed"}`, string(raw))

	raw, err = json.Marshal(NewAccountCreationFailed(id, "generated iban already exists, try again").CreationFeedback)
	require.NoError(t, err)
	assert.JSONEq(t, `{"commandId":"6f1c3b1e-8a0d-4b6e-9d7f-2c5a4e3b1a00","status":"failed","reason":"generated iban already exists, try again"}`, string(raw))

	bc := NewBalanceChanged("NL66OPEN0000000000", 400, -100, "NL80OPEN0123456789", "rent")
	assert.Equal(t, "NL66OPEN0000000000", bc.Key)
	raw, err = json.Marshal(bc.BalanceChanged)
	require.NoError(t, err)
	assert.JSONEq(t, `{"accountId":"NL66OPEN0000000000","newAmount":400,"delta":-100,"counterpartyAccountId":"NL80OPEN0123456789","description":"rent"}`, string(raw))
}

func TestRecord_StoredRoundTrip(t *testing.T) {
	rec := NewBalanceChanged("NL66OPEN0000000000", 400, -100, "cash", "rent")

	raw, err := rec.MarshalPayload()
	require.NoError(t, err)
	got, err := UnmarshalRecord(rec.Kind, rec.Key, raw)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = UnmarshalRecord("Bogus", "k", raw)
	assert.Error(t, err)
	_, err = UnmarshalRecord(KindBalanceChanged, "k", []byte("{"))
	assert.Error(t, err)
}
