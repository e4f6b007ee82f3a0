package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnvelope(t *testing.T) {
	env := Envelope{
		MID:       "7d1c9a52-41e0-4c1c-9a6b-0b5b3c0f7a11",
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Version:   UMFVersion,
		To:        "calculator:/sum",
		From:      "abc@gateway",
		Body:      json.RawMessage(`{"expr":"1<2 && 2>1"}`),
	}

	data, err := MarshalEnvelope(env)
	require.NoError(t, err)
	assert.Equal(t,
		`{"mid":"7d1c9a52-41e0-4c1c-9a6b-0b5b3c0f7a11","timestamp":"2024-05-01T12:00:00Z","version":"UMF/1.4.6","to":"calculator:/sum","from":"abc@gateway","body":{"expr":"1<2 && 2>1"}}`,
		string(data))
}

func TestMarshalEnvelope_BodyBytesKept(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "object with whitespace and newlines", body: "{\"a\": 1,\n  \"b\": [1, 2]}"},
		{name: "indented array", body: "[\n\t1,\n\t2\n]"},
		{name: "string with markup", body: `"<b>&amp;</b>"`},
		{name: "number", body: `1.50`},
		{name: "escaped unicode", body: `{"k": "\u00e9"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Envelope{
				MID:       "m1",
				Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
				Version:   UMFVersion,
				To:        "calculator:/",
				From:      "abc@gateway",
				Headers:   map[string]string{"trace": "t-1"},
				Body:      json.RawMessage(tt.body),
			}

			data, err := MarshalEnvelope(env)
			require.NoError(t, err)
			assert.True(t, json.Valid(data))
			assert.Contains(t, string(data), `"body":`+tt.body+"}")

			got, err := UnmarshalEnvelope(data)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(got.Body))
			assert.Equal(t, env, got)
		})
	}
}

func TestMarshalEnvelope_NoBody(t *testing.T) {
	data, err := MarshalEnvelope(Envelope{MID: "m1", To: "calculator", From: "gateway"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "body")

	got, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	assert.Nil(t, got.Body)
}

func TestMarshalEnvelope_InvalidBody(t *testing.T) {
	_, err := MarshalEnvelope(Envelope{MID: "m1", Body: json.RawMessage(`{broken`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "m1")
}

func TestUnmarshalEnvelope(t *testing.T) {
	env := Envelope{
		MID:       "m1",
		RMID:      "m0",
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Version:   UMFVersion,
		To:        "abc@calculator",
		From:      "gateway",
		Type:      "request",
		Priority:  5,
		Timeout:   1500,
		Headers:   map[string]string{"trace": "t-1"},
		Body:      json.RawMessage(`[1,2,3]`),
	}
	data, err := MarshalEnvelope(env)
	require.NoError(t, err)

	got, err := UnmarshalEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, env, got)
}

func TestUnmarshalEnvelope_UnknownFieldsIgnored(t *testing.T) {
	got, err := UnmarshalEnvelope([]byte(`{"mid":"m1","to":"calculator","signature":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, "m1", got.MID)
}

func TestUnmarshalEnvelope_HeaderSurvivesBadFields(t *testing.T) {
	got, err := UnmarshalEnvelope([]byte(`{"mid":"m1","version":"UMF/2.0","to":"calculator","from":"x","priority":"urgent","body":{}}`))
	require.Error(t, err)
	assert.Equal(t, "m1", got.MID)
	assert.Equal(t, "UMF/2.0", got.Version)
	assert.Equal(t, "calculator", got.To)
	assert.Equal(t, "x", got.From)
	assert.Nil(t, got.Body)
}

func TestUnmarshalEnvelope_Garbage(t *testing.T) {
	got, err := UnmarshalEnvelope([]byte(`not json`))
	require.Error(t, err)
	assert.Equal(t, Envelope{}, got)
}
