package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClientWithOptions(context.Background(), "sheet-123", "",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return client
}

func TestAppendRowSendsRawValues(t *testing.T) {
	var (
		gotPath  string
		gotInput string
		gotBody  struct {
			Values [][]any `json:"values"`
		}
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInput = r.URL.Query().Get("valueInputOption")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-123"}`))
	})

	err := client.AppendRow(context.Background(), []any{"2026-10-16T09:30:00.000Z", "site", "he", "יוסי"})
	require.NoError(t, err)

	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/A1:append", gotPath)
	assert.Equal(t, "RAW", gotInput)
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, []any{"2026-10-16T09:30:00.000Z", "site", "he", "יוסי"}, gotBody.Values[0])
}

func TestAppendRowWrapsAPIErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	})

	err := client.AppendRow(context.Background(), []any{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheets: append row")
}

func TestNewClientWithOptionsRequiresSpreadsheetID(t *testing.T) {
	_, err := NewClientWithOptions(context.Background(), " ", "A1", option.WithoutAuthentication())
	assert.Error(t, err)
}
