package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMarshalDetails_NilBecomesEmptyObject(t *testing.T) {
	got, err := marshalDetails(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Must be a real JSON object, not nil: pgx encodes a nil slice as SQL
	// NULL, which the NOT NULL details column rejects.
	if got == nil {
		t.Fatal("nil details must not marshal to a nil slice")
	}
	if string(got) != "{}" {
		t.Errorf("expected empty object, got %q", got)
	}
}

func TestMarshalDetails_RoundTrips(t *testing.T) {
	got, err := marshalDetails(map[string]interface{}{"fields": []string{"allergies"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	fields, ok := decoded["fields"].([]interface{})
	if !ok || len(fields) != 1 || fields[0] != "allergies" {
		t.Errorf("unexpected payload: %v", decoded)
	}
}

func TestRecorderFunc_Adapts(t *testing.T) {
	var got *Entry
	rec := RecorderFunc(func(_ context.Context, entry *Entry) error {
		got = entry
		return nil
	})

	entry := &Entry{UserID: "a@x.com", Action: "profile_viewed", IPAddress: "10.0.0.1"}
	if err := rec.Record(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.UserID != "a@x.com" || got.Action != "profile_viewed" {
		t.Errorf("expected entry to reach the adapted function, got %+v", got)
	}
}

func TestRecorderFunc_PropagatesFailure(t *testing.T) {
	wantErr := errors.New("store down")
	rec := RecorderFunc(func(_ context.Context, _ *Entry) error {
		return wantErr
	})

	err := rec.Record(context.Background(), &Entry{UserID: "a@x.com", Action: "profile_updated"})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected recorder failure to propagate, got %v", err)
	}
}
