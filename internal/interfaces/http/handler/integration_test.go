package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcontent "github.com/samarth/backend/internal/application/content"
	appintegration "github.com/samarth/backend/internal/application/integration"
	apptraining "github.com/samarth/backend/internal/application/training"
	"github.com/samarth/backend/internal/domain/integration"
	"github.com/samarth/backend/internal/infrastructure/ndu"
	"github.com/samarth/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegrationRouter(env *testEnv) *gin.Engine {
	h := NewIntegrationHandler(env.gateway)
	return env.engine(env.admin, func(r gin.IRoutes) {
		r.POST("/integration/sync/content/:id", h.SyncContent)
		r.POST("/integration/sync/training/:id", h.SyncTraining)
		r.POST("/integration/sync/progress/:id", h.SyncProgress)
		r.GET("/integration/logs", h.Logs)
	})
}

func postWithKey(r http.Handler, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIntegrationHandler_SyncContent(t *testing.T) {
	env := newTestEnv(t)
	r := newIntegrationRouter(env)

	item, err := env.content.Create(t.Context(), appcontent.CreateContentRequest{Title: "Wiring", Category: "Practical", DurationMinutes: 20}, env.admin)
	require.NoError(t, err)
	path := "/integration/sync/content/" + item.ID.String()

	w := postWithKey(r, path, "key-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp appintegration.SyncResponse
	decode(t, w, &resp)
	assert.Equal(t, appintegration.MsgSynced, resp.Message)
	assert.NotEmpty(t, resp.NDUID)

	t.Run("replayed idempotency key is a conflict", func(t *testing.T) {
		w := postWithKey(r, path, "key-1")

		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConflict, decode(t, w, nil).Error.Code)
	})

	t.Run("registry refusal is a bad gateway", func(t *testing.T) {
		env.registry.SetOutcome(integration.EndpointSyncContent, ndu.AlwaysFail())
		defer env.registry.SetOutcome(integration.EndpointSyncContent, ndu.AlwaysSucceed())

		w := postWithKey(r, path, "")

		require.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, dto.ErrCodeUpstream, decode(t, w, nil).Error.Code)
	})

	t.Run("unknown content", func(t *testing.T) {
		w := postWithKey(r, "/integration/sync/content/"+uuid.NewString(), "")

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Content not found", decode(t, w, nil).Error.Message)
	})

	t.Run("logs list newest first", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/integration/logs?limit=2", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var logs []appintegration.LogResponse
		decode(t, w, &logs)
		require.Len(t, logs, 2)
		assert.Equal(t, "FAILURE", logs[0].Status)
		assert.False(t, logs[0].Timestamp.Before(logs[1].Timestamp))
	})

	t.Run("limit above the cap fails binding", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/integration/logs?limit=501", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIntegrationHandler_SyncTraining(t *testing.T) {
	env := newTestEnv(t)
	r := newIntegrationRouter(env)

	program, err := env.training.CreateProgram(t.Context(), apptraining.CreateProgramRequest{Title: "Solar", Instructor: "Asha", Status: "Scheduled"}, env.admin)
	require.NoError(t, err)

	w := postWithKey(r, "/integration/sync/training/"+program.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postWithKey(r, "/integration/sync/training/not-a-uuid", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Training program not found", decode(t, w, nil).Error.Message)
}

func TestIntegrationHandler_SyncProgress(t *testing.T) {
	env := newTestEnv(t)
	r := newIntegrationRouter(env)

	program, err := env.training.CreateProgram(t.Context(), apptraining.CreateProgramRequest{Title: "Solar", Instructor: "Asha", Status: "Scheduled"}, env.admin)
	require.NoError(t, err)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	batch, err := env.training.CreateBatch(t.Context(), program.ID, apptraining.CreateBatchRequest{
		Name: "A", StartDate: start, EndDate: start.AddDate(0, 0, 3), Location: "Pune",
	}, env.admin)
	require.NoError(t, err)
	path := "/integration/sync/progress/" + batch.ID.String()

	t.Run("data is required", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, path, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("acknowledged update", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, path, gin.H{"data": gin.H{"completed": 12}})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp appintegration.ProgressResponse
		decode(t, w, &resp)
		assert.Equal(t, appintegration.MsgProgressSynced, resp.Message)
	})

	t.Run("unknown batch", func(t *testing.T) {
		body := bytes.NewBufferString(`{"data":{"completed":1}}`)
		req := httptest.NewRequest(http.MethodPost, "/integration/sync/progress/"+uuid.NewString(), body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
