package amqp

import "testing"

func TestDashboardUpdatedMessage_RoundTrip(t *testing.T) {
	msg := NewDashboardUpdatedMessage(7, 24300000, 15)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := DashboardUpdatedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("DashboardUpdatedMessageFromJSON() error = %v", err)
	}

	if got.Sequence != 7 {
		t.Errorf("Sequence = %d, want 7", got.Sequence)
	}
	if got.TotalAmount != 24300000 {
		t.Errorf("TotalAmount = %v, want 24300000", got.TotalAmount)
	}
	if got.TransactionCount != 15 {
		t.Errorf("TransactionCount = %d, want 15", got.TransactionCount)
	}
	if got.Timestamp.IsZero() {
		t.Error("Timestamp is zero")
	}
}

func TestDashboardUpdatedMessageFromJSON_Invalid(t *testing.T) {
	if _, err := DashboardUpdatedMessageFromJSON([]byte("{bukan json")); err == nil {
		t.Error("DashboardUpdatedMessageFromJSON() error = nil, want error")
	}
}
