package valueobject

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	t.Run("marshals as YYYY-MM-DD", func(t *testing.T) {
		d := MustParseDate("2024-03-09")
		got, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != `"2024-03-09"` {
			t.Errorf("expected \"2024-03-09\", got %s", got)
		}
	})

	t.Run("zero date marshals as null", func(t *testing.T) {
		got, _ := json.Marshal(Date{})
		if string(got) != "null" {
			t.Errorf("expected null, got %s", got)
		}
	})

	t.Run("accepts RFC 3339 timestamps", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"2024-03-09T15:04:05Z"`), &d); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.String() != "2024-03-09" {
			t.Errorf("expected 2024-03-09, got %s", d)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"next tuesday"`), &d); err == nil {
			t.Error("expected error for unparseable date")
		}
	})
}

func TestNewDate_TruncatesTime(t *testing.T) {
	d := NewDate(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC))
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("expected midnight, got %v", d.Time)
	}
	if !d.Before(MustParseDate("2024-01-03")) {
		t.Error("expected 2024-01-02 before 2024-01-03")
	}
}
