package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Session resolves the account behind an access token
type Session interface {
	Login(ctx context.Context, accessToken string) (common.Address, error)
}

// Auth access token settings
type Auth struct {
	// Secret hmac key of issued tokens, header based accounts are trusted when empty
	Secret  string   `json:"secret"`
	Issuers []string `json:"issuers"`
	// Capacity verified tokens cached, no cache when zero
	Capacity int `json:"capacity"`
}
