package amqp

import (
	"encoding/json"
	"time"
)

// DashboardUpdatedMessage announces that a load cycle completed and new
// results are available. Consumers re-read the dashboard API; the message
// carries only enough to decide whether to bother.
type DashboardUpdatedMessage struct {
	Sequence         uint64    `json:"sequence"`
	TotalAmount      float64   `json:"total_amount"`
	TransactionCount int       `json:"transaction_count"`
	Timestamp        time.Time `json:"timestamp"`
}

func NewDashboardUpdatedMessage(seq uint64, totalAmount float64, txCount int) *DashboardUpdatedMessage {
	return &DashboardUpdatedMessage{
		Sequence:         seq,
		TotalAmount:      totalAmount,
		TransactionCount: txCount,
		Timestamp:        time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DashboardUpdatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DashboardUpdatedMessageFromJSON creates a message from JSON bytes
func DashboardUpdatedMessageFromJSON(data []byte) (*DashboardUpdatedMessage, error) {
	var msg DashboardUpdatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
