package http

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/middleware"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
)

const maxMultipartMemory = 10 << 20

// principal reads the caller set by middleware.AuthRequired and writes a 401 when absent.
func principal(w http.ResponseWriter, r *http.Request) (user.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return user.Principal{}, false
	}
	return p, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// decodeMultipart parses a form whose JSON payload sits in the "data" field and
// returns the optional file stored under fileField. The caller closes the file.
func decodeMultipart(w http.ResponseWriter, r *http.Request, dst interface{}, fileField, op string) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		slog.Error("Failed to parse multipart form", "op", op, "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, false
	}

	if dataJSON := r.FormValue("data"); dataJSON != "" {
		if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
			slog.Error(op+" decode error", "error", err)
			response.BadRequest(w, "Invalid JSON in 'data' field", nil)
			return nil, nil, false
		}
	}

	file, header, err := r.FormFile(fileField)
	if err == http.ErrMissingFile {
		return nil, nil, true
	}
	if err != nil {
		slog.Error("Failed to read form file", "field", fileField, "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return nil, nil, false
	}
	return file, header, true
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
