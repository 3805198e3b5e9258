package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lexis/internal/platform/logger"
	"github.com/phrazzld/lexis/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	assert.Len(t, GetTraceID(traced), 36)
	assert.NotEqual(t, GetTraceID(traced), GetTraceID(SetTraceID(ctx)))
	assert.Empty(t, GetTraceID(ctx), "parent context is unchanged")

	assert.Equal(t, "abc", GetTraceID(WithTraceID(ctx, "abc")))
	assert.Empty(t, GetTraceID(context.WithValue(ctx, TraceIDKey, 42)))
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr error
		wantAny bool
	}{
		{name: "valid", body: `{"name":"agua"}`},
		{name: "empty", body: "", wantErr: ErrEmptyBody},
		{name: "malformed", body: `{"name":`, wantAny: true},
		{name: "unknown field", body: `{"name":"agua","x":1}`, wantAny: true},
		{name: "trailing value", body: `{"name":"agua"}{}`, wantAny: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := DecodeJSON(req, &p)
			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.wantAny:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "agua", p.Name)
			}
		})
	}
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("not ok")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type req struct {
		Kind string `validate:"required,oneof=learning quiz review"`
	}

	assert.NoError(t, ValidateRequest(&req{Kind: "quiz"}))

	err := ValidateRequest(&req{Kind: "cram"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "oneof", verrs[0].Tag())

	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.EqualError(t, ValidateRequest(selfValidating{}), "not ok")
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	RespondWithJSON(w, req, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	capture, log := testutils.NewSlogCapture()
	req := httptest.NewRequest(http.MethodPost, "/api/words", nil)
	ctx := logger.WithLogger(WithTraceID(req.Context(), "t-1"), log)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "Storage is unavailable",
		errors.New("open /etc/lexis/secret.db: permission denied"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Storage is unavailable", resp.Error)
	assert.Equal(t, "t-1", resp.TraceID)

	require.True(t, capture.HasMessage(slog.LevelError, "API error response"))
	for _, e := range capture.Entries() {
		if msg, ok := e["error"].(string); ok {
			assert.NotContains(t, msg, "/etc/lexis")
		}
	}
}
