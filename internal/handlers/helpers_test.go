package handlers_test

import (
	"EvidenceKeeper/internal/config"
	"EvidenceKeeper/internal/handlers"
	"EvidenceKeeper/internal/metrics"
	"EvidenceKeeper/internal/middleware"
	"EvidenceKeeper/internal/model"
	"EvidenceKeeper/internal/repo"
	"EvidenceKeeper/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

type testServer struct {
	router  http.Handler
	db      *gorm.DB
	users   repo.UserRepository
	metrics *metrics.Metrics
}

// newTestServer собирает весь стек поверх in-memory SQLite.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{AuthSecret: testSecret, PhotoMaxSizeMB: 1}
	m := metrics.New()

	users := repo.NewUserRepository(db)
	cases := repo.NewCaseRepository(db)
	props := repo.NewPropertyRepository(db)
	svc := handlers.Services{
		Users:      service.NewUserService(users),
		Cases:      service.NewCaseService(cases, props, users, logger, m),
		Properties: service.NewPropertyService(props, repo.NewPhotoRepository(db), logger, m),
		Custody:    service.NewCustodyService(props, repo.NewCustodyRepository(db), users, logger, m),
		Disposals:  service.NewDisposalService(props, repo.NewDisposalRepository(db), logger, m),
	}
	h := handlers.NewHandler(svc, logger, cfg, m)
	return &testServer{router: h.Router, db: db, users: users, metrics: m}
}

func (s *testServer) officer(t *testing.T, username, first, last string) *model.User {
	t.Helper()
	u, err := s.users.CreateUser(context.Background(), &model.User{
		Username: username, Email: username + "@ps.local", Password: "x", FirstName: first, LastName: last,
	})
	require.NoError(t, err)
	return u
}

// do выполняет запрос от имени сотрудника (userID 0 — анонимно).
func (s *testServer) do(t *testing.T, method, path string, userID int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		addAuthCookie(t, req, userID, testSecret)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}
