package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appaudit "github.com/samarth/backend/internal/application/audit"
	appcontent "github.com/samarth/backend/internal/application/content"
	appdashboard "github.com/samarth/backend/internal/application/dashboard"
	appidentity "github.com/samarth/backend/internal/application/identity"
	appintegration "github.com/samarth/backend/internal/application/integration"
	appinventory "github.com/samarth/backend/internal/application/inventory"
	apptraining "github.com/samarth/backend/internal/application/training"
	"github.com/samarth/backend/internal/application/uow"
	"github.com/samarth/backend/internal/domain/identity"
	"github.com/samarth/backend/internal/infrastructure/auth"
	"github.com/samarth/backend/internal/infrastructure/cache"
	"github.com/samarth/backend/internal/infrastructure/config"
	"github.com/samarth/backend/internal/infrastructure/ndu"
	"github.com/samarth/backend/internal/infrastructure/persistence"
	"github.com/samarth/backend/internal/infrastructure/persistence/persistencetest"
	"github.com/samarth/backend/internal/interfaces/http/dto"
	"github.com/samarth/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// testEnv wires the real services over an in-memory database
type testEnv struct {
	repos      *uow.Set
	hasher     identity.PasswordHasher
	superAdmin *identity.User
	admin      *identity.User
	registry   *ndu.MockRegistry

	auth      *appidentity.AuthService
	users     *appidentity.UserService
	ledger    *appinventory.Ledger
	training  *apptraining.Service
	content   *appcontent.Service
	gateway   *appintegration.Gateway
	dashboard *appdashboard.Service
	recorder  *appaudit.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := persistencetest.NewDB(t)
	repos := persistence.Repositories(db)
	txs := persistence.NewGormTransactionScope(db)
	log := zap.NewNop()
	hasher := identity.NewBcryptHasher(4)
	recorder := appaudit.NewRecorder(repos.Audit(), log)

	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-long-enough-for-hs256",
		Issuer:                "samarth-test",
		AccessTokenExpiration: 30 * time.Minute,
	})
	store := cache.NewInMemoryIdempotencyStore(0)
	t.Cleanup(func() { _ = store.Close() })
	registry := ndu.NewMockRegistry()

	env := &testEnv{
		repos:     repos,
		hasher:    hasher,
		registry:  registry,
		auth:      appidentity.NewAuthService(repos.Users(), hasher, tokens, auth.NewInMemoryTokenBlacklist(), recorder, log),
		users:     appidentity.NewUserService(repos.Users(), hasher, identity.DefaultPolicy(), txs, log),
		ledger:    appinventory.NewLedger(repos.Items(), repos.Transactions(), txs, recorder, log),
		training:  apptraining.NewService(repos.Programs(), repos.Batches(), txs, log),
		content:   appcontent.NewService(repos.Content(), txs, log),
		dashboard: appdashboard.NewService(repos.Items(), repos.Batches(), repos.Content(), repos.Audit()),
		recorder:  recorder,
		gateway: appintegration.NewGateway(
			config.SyncConfig{MaxRetries: 3, Source: "SAMARTH_PORTAL", IdempotencyTTL: time.Hour},
			registry, repos, txs, log,
			appintegration.WithIdempotencyStore(store),
		),
	}
	env.superAdmin = env.createUser(t, "superadmin", identity.RoleSuperAdmin)
	env.admin = env.createUser(t, "admin", identity.RoleAdmin)
	return env
}

func (e *testEnv) createUser(t *testing.T, username string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, "password123", role, "", e.hasher)
	require.NoError(t, err)
	require.NoError(t, e.repos.Users().Create(context.Background(), u))
	return u
}

// engine returns a router that treats every request as coming from user.
// A nil user leaves the request anonymous.
func (e *testEnv) engine(user *identity.User, register func(r gin.IRoutes)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.PrincipalKey, &appidentity.Principal{User: user, Claims: &auth.Claims{Role: user.Role.String()}})
			c.Next()
		})
	}
	register(r)
	return r
}

func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()
	logs, err := e.repos.Audit().Recent(context.Background(), 100)
	require.NoError(t, err)
	actions := make([]string, len(logs))
	for i := range logs {
		actions[i] = logs[i].Action
	}
	return actions
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope mirrors dto.Response with the payload left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func jsonUnmarshal(w *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(w.Body.Bytes(), out)
}
