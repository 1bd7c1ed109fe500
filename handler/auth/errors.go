package auth

import (
	"github.com/twitchtv/twirp"
)

func unauthenticated(err error) twirp.Error {
	return twirp.NewError(twirp.Unauthenticated, err.Error())
}
