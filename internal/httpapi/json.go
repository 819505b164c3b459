package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

var errBodyTooLarge = errors.New("request body too large")

// decode reads the body, checks it against schema and unmarshals it into dst.
func decode(r *http.Request, schema *gojsonschema.Schema, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	if len(body) == 0 {
		return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: request body is not valid JSON", domain.ErrValidation)
	}

	if !result.Valid() {
		fields := lo.Map(result.Errors(), func(e gojsonschema.ResultError, _ int) string {
			if e.Field() == gojsonschema.STRING_CONTEXT_ROOT {
				return "body"
			}
			return e.Field()
		})
		return domain.NewValidationError(lo.Uniq(fields)...)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
