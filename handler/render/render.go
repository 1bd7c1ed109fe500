package render

import (
	"encoding/json"
	"net/http"
	"strconv"

	"nftpool/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(H{"data": v}); err != nil {
		logrus.WithError(err).Errorln("render.JSON")
	}
}

// Error write error, the http status follows the twirp code
func Error(w http.ResponseWriter, err error) {
	twerr := codes.FromError(err)

	code := codes.Get(twerr.Code())
	if v := twerr.Meta(codes.CustomCodeKey); v != "" {
		code, _ = strconv.Atoi(v)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	enc := json.NewEncoder(w)
	if err := enc.Encode(H{"code": code, "msg": twerr.Msg()}); err != nil {
		logrus.WithError(err).Errorln("render.Error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, codes.With(twirp.InvalidArgumentError("params", err.Error()), codes.InvalidArguments))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
