package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/benjisbeans/kapaiputea-app/internal/domain"
)

func TestXPBreakdownWireShape(t *testing.T) {
	// Zero-valued bonuses still appear so clients always see the full
	// breakdown.
	data, err := json.Marshal(domain.XPBreakdown{Base: 50, Total: 50})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"base", "streak", "daily_bonus", "total"} {
		if _, ok := m[key]; !ok {
			t.Errorf("field %q missing from wire form %s", key, data)
		}
	}
	if m["streak"] != 0 || m["daily_bonus"] != 0 {
		t.Errorf("expected zero bonuses, got %s", data)
	}
}
