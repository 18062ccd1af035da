package middleware

import (
	"net/http"

	"github.com/oerc-s/primordia/pkg/utils"
)

// defaultMaxBodyBytes bounds a request body absent a PRIMORDIA_MAX_BODY_BYTES
// override.
const defaultMaxBodyBytes uint64 = 1 << 20 // 1 MiB

// MaxBodyBytes rejects request bodies larger than PRIMORDIA_MAX_BODY_BYTES
// (default 1 MiB), guarding the netting and default-declaration endpoints
// from an oversized payload before it ever reaches json.Decode.
func MaxBodyBytes(next http.Handler) http.Handler {
	limit := utils.EnvOrDefaultUint64("PRIMORDIA_MAX_BODY_BYTES", defaultMaxBodyBytes)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, int64(limit))
		next.ServeHTTP(w, r)
	})
}
