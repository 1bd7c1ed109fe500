package views

import (
	"time"

	"nftpool/core"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Event event view
type Event struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	TraceID   string          `json:"trace_id"`
	Version   int64           `json:"version"`
	Type      core.EventType  `json:"type"`
	Account   string          `json:"account"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	LP        decimal.Decimal `json:"lp"`
	TokenIDs  []string        `json:"token_ids"`
	Data      types.JSONText  `json:"data,omitempty"`
}

// EventView event view
func EventView(e *core.Event) Event {
	tokens := []string(e.TokenIDs)
	if tokens == nil {
		tokens = []string{}
	}

	return Event{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		TraceID:   e.TraceID,
		Version:   e.Version,
		Type:      e.Type,
		Account:   e.Account,
		Price:     e.Price,
		Amount:    e.Amount,
		LP:        e.LP,
		TokenIDs:  tokens,
		Data:      e.Data,
	}
}

// EventsView events view
func EventsView(events []*core.Event) []Event {
	views := make([]Event, len(events))
	for i, e := range events {
		views[i] = EventView(e)
	}

	return views
}

// Default default view
type Default struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DefaultSuccess default success view
var DefaultSuccess = Default{
	Code:    0,
	Message: "success",
}
