package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCheckOutcome_JSONRoundTrip(t *testing.T) {
	code := 404
	msg := "HTTP 404"
	ms := int64(123)
	want := CheckOutcome{
		Name:           "example",
		URL:            "https://example.com",
		Success:        false,
		Error:          &msg,
		StatusCode:     &code,
		ResponseTimeMS: &ms,
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got CheckOutcome
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != want.Name || got.URL != want.URL || got.Success != want.Success {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
	if got.Error == nil || *got.Error != msg || got.StatusCode == nil || *got.StatusCode != 404 {
		t.Fatalf("optional fields lost: %+v", got)
	}
}

func TestCheckOutcome_NilFieldsMarshalAsNull(t *testing.T) {
	out := CheckOutcome{Name: "up", URL: "https://up.example", Success: true}
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"error":null`, `"status_code":null`, `"response_time_ms":null`} {
		if !strings.Contains(s, want) {
			t.Fatalf("want %s in %s", want, s)
		}
	}
}

func TestRunSummary_TimestampRFC3339(t *testing.T) {
	sum := RunSummary{
		Timestamp:    time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
		TotalChecked: 1,
		Successful:   1,
		Results:      []CheckOutcome{{Name: "a", URL: "https://a", Success: true}},
	}
	b, err := json.Marshal(sum)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"timestamp":"2025-08-18T12:00:00Z"`) {
		t.Fatalf("timestamp not RFC3339: %s", b)
	}
}
