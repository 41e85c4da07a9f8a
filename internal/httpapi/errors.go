package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"classifyd/pkg/types"
)

// errNoImage is the only client error the classify route reports.
const errNoImage = "No image provided"

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

// isMissingImage reports whether a FormFile error means the client sent no
// image: no multipart body, an empty one, or one without the image field.
func isMissingImage(err error) bool {
	return errors.Is(err, http.ErrMissingFile) ||
		errors.Is(err, http.ErrNotMultipart) ||
		errors.Is(err, io.EOF)
}
