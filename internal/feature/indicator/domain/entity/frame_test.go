package entity_test

import (
	"encoding/json"
	"testing"

	"stock_agent/internal/feature/indicator/domain/entity"
)

// TestOptFloat_MarshalJSON は未定義値がnull、定義済み値が数値として
// シリアライズされることを検証します。
func TestOptFloat_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    entity.OptFloat
		expected string
	}{
		{"undefined is null", entity.None(), "null"},
		{"defined value", entity.Some(10.5), "10.5"},
		{"defined zero is not null", entity.Some(0), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(b) != tt.expected {
				t.Errorf("got %s, want %s", b, tt.expected)
			}
		})
	}
}

// TestOptFloat_UnmarshalJSON はnullが未定義として読み込まれることを検証します。
func TestOptFloat_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var o entity.OptFloat
	if err := json.Unmarshal([]byte("null"), &o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Valid {
		t.Error("null should unmarshal as undefined")
	}

	if err := json.Unmarshal([]byte("42.5"), &o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.Valid || o.Value != 42.5 {
		t.Errorf("got %+v, want valid 42.5", o)
	}
}
