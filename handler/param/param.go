package param

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
	decoder.RegisterConverter(decimal.Decimal{}, func(s string) reflect.Value {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return reflect.Value{}
		}

		return reflect.ValueOf(d)
	})

	govalidator.TagMap["address"] = govalidator.Validator(func(s string) bool {
		return len(s) == 42 && strings.HasPrefix(s, "0x") && govalidator.IsHexadecimal(s[2:])
	})
}

// Binding decode query (GET) or json body into v and validate it
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return err
		}
	} else if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(v); err != nil {
			return err
		}
	}

	_, err := govalidator.ValidateStruct(v)
	return err
}

// String url param
func String(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// Decimal url param as decimal
func Decimal(r *http.Request, key string) (decimal.Decimal, error) {
	return decimal.NewFromString(chi.URLParam(r, key))
}
