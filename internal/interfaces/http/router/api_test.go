package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appaudit "github.com/samarth/backend/internal/application/audit"
	appcontent "github.com/samarth/backend/internal/application/content"
	appdashboard "github.com/samarth/backend/internal/application/dashboard"
	appidentity "github.com/samarth/backend/internal/application/identity"
	appintegration "github.com/samarth/backend/internal/application/integration"
	appinventory "github.com/samarth/backend/internal/application/inventory"
	apptraining "github.com/samarth/backend/internal/application/training"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/infrastructure/auth"
	"github.com/samarth/backend/internal/infrastructure/config"
	"github.com/samarth/backend/internal/infrastructure/ndu"
	"github.com/samarth/backend/internal/infrastructure/persistence"
	"github.com/samarth/backend/internal/infrastructure/persistence/persistencetest"
	"github.com/samarth/backend/internal/interfaces/http/dto"
	"github.com/samarth/backend/internal/interfaces/http/handler"
	"github.com/samarth/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiOption func(*APIOptions)

func newAPI(t *testing.T, opts ...apiOption) *gin.Engine {
	t.Helper()
	middleware.SetupValidator()

	db := persistencetest.NewDB(t)
	repos := persistence.Repositories(db)
	txs := persistence.NewGormTransactionScope(db)
	log := zap.NewNop()
	hasher := identity.NewBcryptHasher(4)
	recorder := appaudit.NewRecorder(repos.Audit(), log)
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-long-enough-for-hs256",
		Issuer:                "samarth-test",
		AccessTokenExpiration: 30 * time.Minute,
	})

	authService := appidentity.NewAuthService(repos.Users(), hasher, tokens, auth.NewInMemoryTokenBlacklist(), recorder, log)
	userService := appidentity.NewUserService(repos.Users(), hasher, identity.DefaultPolicy(), txs, log)
	gateway := appintegration.NewGateway(config.SyncConfig{MaxRetries: 1, Source: "SAMARTH_PORTAL"}, ndu.NewMockRegistry(), repos, txs, log)

	engine := NewEngine(EngineOptions{
		Logger: log,
		HTTP: config.HTTPConfig{
			MaxBodySize:      1 << 20,
			CORSAllowOrigins: []string{"http://localhost:5173"},
		},
	})
	apiOpts := APIOptions{
		Authenticator: authService,
		Policy:        identity.DefaultPolicy(),
		Logger:        log,
		SeedEnabled:   true,
	}
	for _, opt := range opts {
		opt(&apiOpts)
	}
	RegisterAPI(engine, Handlers{
		System:      handler.NewSystemHandler(nil),
		Auth:        handler.NewAuthHandler(authService, userService),
		User:        handler.NewUserHandler(userService),
		Inventory:   handler.NewInventoryHandler(appinventory.NewLedger(repos.Items(), repos.Transactions(), txs, recorder, log)),
		Training:    handler.NewTrainingHandler(apptraining.NewService(repos.Programs(), repos.Batches(), txs, log)),
		Content:     handler.NewContentHandler(appcontent.NewService(repos.Content(), txs, log)),
		Integration: handler.NewIntegrationHandler(gateway),
		Dashboard:   handler.NewDashboardHandler(appdashboard.NewService(repos.Items(), repos.Batches(), repos.Content(), repos.Audit()), recorder),
	}, apiOpts)
	return engine
}

func call(engine http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine http.Handler, username string) string {
	t.Helper()
	w := call(engine, http.MethodPost, "/api/v1/auth/token", "", gin.H{"username": username, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var token appidentity.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &token))
	return token.AccessToken
}

func seed(t *testing.T, engine http.Handler) {
	t.Helper()
	w := call(engine, http.MethodPost, "/api/v1/auth/init-users", "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestRegisterAPI_PublicEndpoints(t *testing.T) {
	engine := newAPI(t)

	w := call(engine, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Project SAMARTH API is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = call(engine, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAPI_Authentication(t *testing.T) {
	engine := newAPI(t)
	seed(t, engine)

	t.Run("protected routes need a token", func(t *testing.T) {
		w := call(engine, http.MethodGet, "/api/v1/dashboard/stats", "", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.Equal(t, dto.ErrCodeUnauthorized, errorCode(t, w))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := call(engine, http.MethodGet, "/api/v1/auth/me", "not.a.jwt", nil)

		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeTokenInvalid, errorCode(t, w))
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		token := login(t, engine, "admin")
		require.Equal(t, http.StatusOK, call(engine, http.MethodGet, "/api/v1/auth/me", token, nil).Code)

		require.Equal(t, http.StatusOK, call(engine, http.MethodPost, "/api/v1/auth/logout", token, nil).Code)

		w := call(engine, http.MethodGet, "/api/v1/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegisterAPI_Authorization(t *testing.T) {
	engine := newAPI(t)
	seed(t, engine)
	admin := login(t, engine, "admin")
	superAdmin := login(t, engine, "superadmin")
	id := uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"delete user", http.MethodDelete, "/api/v1/auth/users/" + id, nil},
		{"delete training", http.MethodDelete, "/api/v1/training/" + id, nil},
		{"approve content", http.MethodPost, "/api/v1/content/" + id + "/approve", nil},
		{"reject content", http.MethodPost, "/api/v1/content/" + id + "/reject", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(engine, tt.method, tt.path, admin, tt.body)
			require.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, dto.ErrCodeForbidden, errorCode(t, w))

			// the super admin passes the policy and reaches the handler
			w = call(engine, tt.method, tt.path, superAdmin, tt.body)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}

	t.Run("admin cannot create a super admin", func(t *testing.T) {
		w := call(engine, http.MethodPost, "/api/v1/auth/users/", admin, gin.H{
			"username": "boss",
			"password": "password123",
			"role":     "SUPER_ADMIN",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin reaches shared routes", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/inventory/",
			"/api/v1/inventory/utilization",
			"/api/v1/training/",
			"/api/v1/content/",
			"/api/v1/integration/logs",
			"/api/v1/dashboard/stats",
			"/api/v1/audit/recent",
			"/api/v1/auth/users/",
		} {
			assert.Equal(t, http.StatusOK, call(engine, http.MethodGet, path, admin, nil).Code, path)
		}
	})
}

func TestRegisterAPI_LoginRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)
	t.Cleanup(limiter.Stop)
	engine := newAPI(t, func(o *APIOptions) { o.LoginLimiter = limiter })

	bad := gin.H{"username": "nobody", "password": "password123"}
	for i := 0; i < 2; i++ {
		w := call(engine, http.MethodPost, "/api/v1/auth/token", "", bad)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := call(engine, http.MethodPost, "/api/v1/auth/token", "", bad)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, dto.ErrCodeRateLimited, errorCode(t, w))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRegisterAPI_SeedDisabled(t *testing.T) {
	engine := newAPI(t, func(o *APIOptions) { o.SeedEnabled = false })

	w := call(engine, http.MethodPost, "/api/v1/auth/init-users", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewEngine_CORS(t *testing.T) {
	engine := newAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/token", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
