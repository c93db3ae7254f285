package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthmart/internal/models"
	"healthmart/internal/responses"
	"healthmart/internal/services"
)

type stubSchemaStore struct {
	tables map[string]map[string]bool
}

func newStubSchemaStore(source string, tables ...string) *stubSchemaStore {
	store := &stubSchemaStore{tables: map[string]map[string]bool{source: {}}}
	for _, table := range tables {
		store.tables[source][table] = true
	}
	return store
}

func (s *stubSchemaStore) EnsureSchema(_ context.Context, schema string) error {
	if _, ok := s.tables[schema]; !ok {
		s.tables[schema] = make(map[string]bool)
	}
	return nil
}

func (s *stubSchemaStore) TransferTable(_ context.Context, source, destination, table string) error {
	if !s.tables[source][table] {
		return fmt.Errorf("relation %q does not exist", table)
	}
	delete(s.tables[source], table)
	s.tables[destination][table] = true
	return nil
}

func (s *stubSchemaStore) TableExists(_ context.Context, schema, table string) (bool, error) {
	return s.tables[schema][table], nil
}

func (s *stubSchemaStore) ListTables(_ context.Context, schema string) ([]string, error) {
	var names []string
	for name := range s.tables[schema] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type stubRunStore struct {
	runs []models.MigrationRun
}

func (s *stubRunStore) Insert(_ context.Context, run *models.MigrationRun) error {
	s.runs = append(s.runs, *run)
	return nil
}

func (s *stubRunStore) List(_ context.Context, limit int) ([]models.MigrationRun, error) {
	if len(s.runs) > limit {
		return s.runs[:limit], nil
	}
	return s.runs, nil
}

func newTestRouter(store services.SchemaStore, runs services.RunStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewMigrationHandler(services.NewMigrationService(store, runs))
	router := gin.New()
	router.POST("/api/v1/migrations", handler.Run)
	router.GET("/api/v1/migrations", handler.History)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, responses.APIResponse) {
	t.Helper()
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)

	var resp responses.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return recorder, resp
}

func TestRunMigration_Success(t *testing.T) {
	router := newTestRouter(newStubSchemaStore("public", "calcule", "stastique"), &stubRunStore{})

	recorder, resp := doRequest(t, router, http.MethodPost, "/api/v1/migrations",
		`{"destination":"archive","source":"public","tables":["calcule","stastique"]}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "success", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var report models.MigrationReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, []string{"calcule", "stastique"}, report.Moved)
	assert.Equal(t, []string{"calcule", "stastique"}, report.Membership)
}

func TestRunMigration_PartialFailure(t *testing.T) {
	router := newTestRouter(newStubSchemaStore("public", "calcule"), &stubRunStore{})

	recorder, resp := doRequest(t, router, http.MethodPost, "/api/v1/migrations",
		`{"destination":"archive","source":"public","tables":["calcule","ghost"]}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "partial", resp.Status)
}

func TestRunMigration_InvalidBody(t *testing.T) {
	router := newTestRouter(newStubSchemaStore("public"), &stubRunStore{})

	recorder, resp := doRequest(t, router, http.MethodPost, "/api/v1/migrations",
		`{"source":"public"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestMigrationHistory(t *testing.T) {
	store := newStubSchemaStore("public", "calcule")
	runs := &stubRunStore{}
	router := newTestRouter(store, runs)

	_, _ = doRequest(t, router, http.MethodPost, "/api/v1/migrations",
		`{"destination":"archive","source":"public","tables":["calcule"]}`)

	recorder, resp := doRequest(t, router, http.MethodGet, "/api/v1/migrations", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "success", resp.Status)
	require.Len(t, runs.runs, 1)
}

func TestMigrationHistory_InvalidLimit(t *testing.T) {
	router := newTestRouter(newStubSchemaStore("public"), &stubRunStore{})

	recorder, _ := doRequest(t, router, http.MethodGet, "/api/v1/migrations?limit=zero", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
