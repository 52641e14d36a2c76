package bind

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	perr "glossrank/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

// ParseQuery fills T from `query:"name"` and `path:"name"` tags, applies `default:"v"`
// for missing values, then validates. Supported kinds: string, bool, ints, floats.
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, nil
	}
	rt := rv.Type()
	q := r.URL.Query()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name, raw := "", ""
		if n := f.Tag.Get("path"); n != "" {
			name, raw = n, chi.URLParam(r, n)
		} else if n := f.Tag.Get("query"); n != "" {
			name, raw = n, strings.TrimSpace(q.Get(n))
		} else {
			continue
		}
		if raw == "" {
			raw = f.Tag.Get("default")
		}
		if raw == "" {
			continue
		}
		if err := setScalar(rv.Field(i), raw); err != nil {
			return dst, perr.WithField(perr.Validationf("%s must be a valid %s", name, f.Type.Kind()), name)
		}
	}

	if err := Validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func setScalar(fv reflect.Value, raw string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(n)
	default:
		return strconv.ErrSyntax
	}
	return nil
}
