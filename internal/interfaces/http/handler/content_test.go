package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcontent "github.com/samarth/backend/internal/application/content"
	"github.com/samarth/backend/internal/domain/audit"
	"github.com/samarth/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentRouter(env *testEnv) *gin.Engine {
	h := NewContentHandler(env.content)
	return env.engine(env.superAdmin, func(r gin.IRoutes) {
		r.GET("/content/", h.List)
		r.POST("/content/", h.Create)
		r.POST("/content/:id/approve", h.Approve)
		r.POST("/content/:id/reject", h.Reject)
	})
}

func createContent(t *testing.T, r http.Handler, body gin.H) appcontent.ContentResponse {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/content/", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var item appcontent.ContentResponse
	decode(t, w, &item)
	return item
}

func TestContentHandler_Create(t *testing.T) {
	env := newTestEnv(t)
	r := newContentRouter(env)

	item := createContent(t, r, gin.H{"title": "Wiring 101", "category": "practical", "duration_minutes": 45})
	assert.Equal(t, "Practical", item.Category)
	assert.Equal(t, "Pending", item.ApprovalStatus)
	assert.Contains(t, env.auditActions(t), audit.ActionCreateContent)

	t.Run("zero duration fails binding", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/content/", gin.H{"title": "X", "category": "Pedagogy", "duration_minutes": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/content/?limit=10", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var items []appcontent.ContentResponse
		resp := decode(t, w, &items)
		assert.Len(t, items, 1)
		assert.Equal(t, 10, resp.Meta.Limit)
	})
}

func TestContentHandler_Review(t *testing.T) {
	env := newTestEnv(t)
	r := newContentRouter(env)

	t.Run("approval requires every quality flag", func(t *testing.T) {
		item := createContent(t, r, gin.H{
			"title":                "Partial",
			"category":             "Pedagogy",
			"duration_minutes":     30,
			"has_safety_checklist": true,
		})

		w := doJSON(r, http.MethodPost, "/content/"+item.ID.String()+"/approve", nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decode(t, w, nil).Error.Code)
	})

	t.Run("complete content is approved", func(t *testing.T) {
		item := createContent(t, r, gin.H{
			"title":                "Complete",
			"category":             "Pedagogy",
			"duration_minutes":     30,
			"has_safety_checklist": true,
			"has_troubleshooting":  true,
			"has_assessment_cues":  true,
			"quality_checked":      true,
		})

		w := doJSON(r, http.MethodPost, "/content/"+item.ID.String()+"/approve", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		decode(t, w, &item)
		assert.Equal(t, "Approved", item.ApprovalStatus)
		assert.Contains(t, env.auditActions(t), audit.ActionReviewContent)
	})

	t.Run("reject", func(t *testing.T) {
		item := createContent(t, r, gin.H{"title": "Rough", "category": "Pedagogy", "duration_minutes": 10})

		w := doJSON(r, http.MethodPost, "/content/"+item.ID.String()+"/reject", nil)

		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &item)
		assert.Equal(t, "Rejected", item.ApprovalStatus)
	})

	t.Run("unknown content", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/content/"+uuid.NewString()+"/reject", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Content not found", decode(t, w, nil).Error.Message)
	})
}
