package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/healthdiary-go/internal/conf"
	"github.com/tphakala/healthdiary-go/internal/errors"
	"github.com/tphakala/healthdiary-go/internal/tablestore"
)

type insertCall struct {
	table  string
	entity tablestore.Entity
}

// mockStore implements EntryStore with canned responses.
type mockStore struct {
	listResp  map[string][]tablestore.Entity
	listErr   error
	insertErr error

	listed  []string
	inserts []insertCall
}

func (m *mockStore) ListEntities(_ context.Context, tableName string) ([]tablestore.Entity, error) {
	m.listed = append(m.listed, tableName)
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listResp[tableName], nil
}

func (m *mockStore) InsertEntity(_ context.Context, tableName string, entity tablestore.Entity) error {
	m.inserts = append(m.inserts, insertCall{table: tableName, entity: entity})
	return m.insertErr
}

// mockCompleter implements Completer with a canned result.
type mockCompleter struct {
	result  string
	err     error
	prompts []string
	tokens  []int
}

func (m *mockCompleter) Complete(_ context.Context, prompt string, maxTokens int) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.tokens = append(m.tokens, maxTokens)
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}

func testSettings() *conf.Settings {
	return &conf.Settings{
		Main: conf.MainSettings{Name: "HealthDiary-Go"},
		Completion: conf.CompletionSettings{
			AnalysisMaxTokens: 2000,
			QuestionMaxTokens: 1500,
		},
	}
}

func newTestController(store EntryStore, completer Completer) *echo.Echo {
	e := echo.New()
	New(e, testSettings(), store, completer, nil)
	return e
}

func perform(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	e := newTestController(&mockStore{}, nil)

	rec := perform(e, http.MethodGet, "/api/v2/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["storage"])
}

func TestGetSymptomEntries(t *testing.T) {
	store := &mockStore{listResp: map[string][]tablestore.Entity{
		"symptomentries": {
			{
				"PartitionKey": "symptoms",
				"RowKey":       "2024-01-01_21-00_1704142800000-deadbeef",
				"date":         "2024-01-01",
				"time":         "21:00",
				"symptomScore": float64(7),
				"notes":        "cramping",
				"Timestamp":    "2024-01-01T21:00:01Z",
			},
		},
	}}
	e := newTestController(store, nil)

	rec := perform(e, http.MethodGet, "/api/v2/symptoms", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"symptomentries"}, store.listed)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01-01", entries[0]["date"])
	assert.EqualValues(t, 7, entries[0]["symptomScore"])
	assert.NotContains(t, entries[0], "PartitionKey", "storage system fields must not leak")
	assert.NotContains(t, entries[0], "Timestamp")
}

func TestGetFoodEntries_EmptyTable(t *testing.T) {
	e := newTestController(&mockStore{}, nil)

	rec := perform(e, http.MethodGet, "/api/v2/food", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "empty table must yield an empty array, not null")
}

func TestCreateSymptomEntry(t *testing.T) {
	store := &mockStore{}
	e := newTestController(store, nil)

	rec := perform(e, http.MethodPost, "/api/v2/symptoms",
		`{"date":"2024-01-01","time":"21:00","symptomScore":"7","notes":"cramping"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	require.Len(t, store.inserts, 1)
	call := store.inserts[0]
	assert.Equal(t, "symptomentries", call.table)
	assert.Equal(t, "symptoms", call.entity["PartitionKey"])
	assert.Equal(t, 7, call.entity["symptomScore"], "numeric string coerces to a stored integer")
	assert.NotEmpty(t, call.entity["RowKey"])
}

func TestCreateSymptomEntry_NonNumericScore(t *testing.T) {
	store := &mockStore{}
	e := newTestController(store, nil)

	rec := perform(e, http.MethodPost, "/api/v2/symptoms",
		`{"date":"2024-01-01","time":"21:00","symptomScore":"bad"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.inserts, "invalid payloads must not reach storage")
}

func TestCreateFoodEntry_MissingField(t *testing.T) {
	store := &mockStore{}
	e := newTestController(store, nil)

	rec := perform(e, http.MethodPost, "/api/v2/food",
		`{"date":"2024-01-01","time":"12:00"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "food is required")
	assert.Len(t, body.CorrelationID, 8)
	assert.Empty(t, store.inserts)
}

func TestStorageUnconfigured(t *testing.T) {
	e := newTestController(nil, nil)

	rec := perform(e, http.MethodGet, "/api/v2/food", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "AZURE_STORAGE_CONNECTION_STRING")
}

func TestListFailureSurfacesUpstreamStatus(t *testing.T) {
	store := &mockStore{listErr: errors.Newf("request failed: 404 table not found").
		Component("tablestore").
		Category(errors.CategoryHTTP).
		Build()}
	e := newTestController(store, nil)

	rec := perform(e, http.MethodGet, "/api/v2/drinks", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "404 table not found")
}

func TestRunAnalysis(t *testing.T) {
	store := &mockStore{}
	completer := &mockCompleter{result: "Tomatoes correlate with symptoms."}
	e := newTestController(store, completer)

	rec := perform(e, http.MethodPost, "/api/v2/analysis",
		`{"foodEntries":[{"date":"2024-01-01","time":"12:00","food":"tomato soup"}],
		  "symptomEntries":[{"date":"2024-01-01","time":"15:00","symptomScore":6}],
		  "days":7}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Tomatoes correlate with symptoms.", body.Analysis)

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "tomato soup")
	assert.Equal(t, []int{2000}, completer.tokens)

	require.Len(t, store.inserts, 1)
	call := store.inserts[0]
	assert.Equal(t, "analysisentries", call.table)
	assert.Equal(t, "analysis", call.entity["PartitionKey"])
	assert.Equal(t, 7, call.entity["days"])
	assert.Equal(t, "Tomatoes correlate with symptoms.", call.entity["analysis"])
}

func TestRunAnalysis_MissingData(t *testing.T) {
	store := &mockStore{}
	completer := &mockCompleter{result: "unused"}
	e := newTestController(store, completer)

	rec := perform(e, http.MethodPost, "/api/v2/analysis",
		`{"foodEntries":[{"date":"2024-01-01","time":"12:00","food":"soup"}],"days":7}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, completer.prompts, "validation failures must not trigger a completion")
	assert.Empty(t, store.inserts)
}

func TestRunAnalysis_CompletionFailureAbortsStorage(t *testing.T) {
	store := &mockStore{}
	completer := &mockCompleter{err: errors.Newf("Rate limit exceeded").
		Component("completion").
		Category(errors.CategoryCompletion).
		Build()}
	e := newTestController(store, completer)

	rec := perform(e, http.MethodPost, "/api/v2/analysis",
		`{"foodEntries":[],"symptomEntries":[],"days":1}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, store.inserts, "a failed completion must leave no stored entry")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "Rate limit exceeded")
}

func TestRunAnalysis_CompleterUnconfigured(t *testing.T) {
	e := newTestController(&mockStore{}, nil)

	rec := perform(e, http.MethodPost, "/api/v2/analysis",
		`{"foodEntries":[],"symptomEntries":[],"days":1}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "ANTHROPIC_API_KEY")
}

func TestAskQuestion(t *testing.T) {
	completer := &mockCompleter{result: "Wine is a likely trigger."}
	e := newTestController(&mockStore{}, completer)

	rec := perform(e, http.MethodPost, "/api/v2/question",
		`{"question":"Does wine make it worse?","days":3,
		  "foodEntries":[],"symptomEntries":[],"medicationEntries":[],"drinkEntries":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"answer":"Wine is a likely trigger."}`, rec.Body.String())

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Does wine make it worse?")
	assert.Equal(t, []int{1500}, completer.tokens)
}

func TestAskQuestion_BlankQuestion(t *testing.T) {
	completer := &mockCompleter{result: "unused"}
	e := newTestController(&mockStore{}, completer)

	rec := perform(e, http.MethodPost, "/api/v2/question", `{"question":"   ","days":3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, completer.prompts)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No question provided", body.Message)
}
