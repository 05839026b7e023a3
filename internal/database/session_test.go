package database_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/database"
	"github.com/lukaszkurczab/food-scanner-ai-backend/internal/infrastructure/logger"
)

type recordingProvider struct {
	acquireErr error
	releaseErr error
	released   int
}

func (p *recordingProvider) Acquire(context.Context) (*database.Session, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return &database.Session{}, nil
}

func (p *recordingProvider) Release(*database.Session) error {
	p.released++
	return p.releaseErr
}

func TestNopProvider(t *testing.T) {
	t.Parallel()

	var p database.NopProvider
	s, err := p.Acquire(t.Context())
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, p.Release(s))
}

func TestWithSession_NilProviderYieldsNilSession(t *testing.T) {
	t.Parallel()

	called := false
	err := database.WithSession(t.Context(), nil, func(_ context.Context, s *database.Session) error {
		called = true
		assert.Nil(t, s)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestWithSession_AlwaysReleases(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("handler failed")
	releaseErr := errors.New("connection reset")
	p := &recordingProvider{releaseErr: releaseErr}

	err := database.WithSession(t.Context(), p, func(context.Context, *database.Session) error {
		return fnErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fnErr)
	assert.ErrorIs(t, err, releaseErr)
	assert.Equal(t, 1, p.released)
}

func TestWithSession_AcquireFailureSkipsCallback(t *testing.T) {
	t.Parallel()

	acquireErr := errors.New("pool exhausted")
	p := &recordingProvider{acquireErr: acquireErr}

	err := database.WithSession(t.Context(), p, func(context.Context, *database.Session) error {
		t.Fatal("callback must not run")
		return nil
	})
	require.ErrorIs(t, err, acquireErr)
	assert.Zero(t, p.released)
}

func serveWithProvider(t *testing.T, p database.SessionProvider, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(database.Middleware(p, logger.NewNop()))
	router.GET("/api/v1/health", h)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "/api/v1/health", http.NoBody)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_ExposesSessionAndReleases(t *testing.T) {
	p := &recordingProvider{}

	var seen *database.Session
	w := serveWithProvider(t, p, func(c *gin.Context) {
		seen = database.FromGin(c)
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, seen)
	assert.Equal(t, 1, p.released)
}

func TestMiddleware_NopProviderGivesNilSession(t *testing.T) {
	called := false
	w := serveWithProvider(t, database.NopProvider{}, func(c *gin.Context) {
		called = true
		assert.Nil(t, database.FromGin(c))
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestMiddleware_AcquireFailureIs503(t *testing.T) {
	p := &recordingProvider{acquireErr: errors.New("pool exhausted")}

	w := serveWithProvider(t, p, func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"detail":"Service Unavailable"}`, w.Body.String())
}

func TestWithSession_ReleasesWhenCallbackPanics(t *testing.T) {
	t.Parallel()

	p := &recordingProvider{}

	assert.PanicsWithValue(t, "boom", func() {
		_ = database.WithSession(t.Context(), p, func(context.Context, *database.Session) error {
			panic("boom")
		})
	})
	assert.Equal(t, 1, p.released)
}

func TestMiddleware_ReleasesWhenHandlerPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := &recordingProvider{}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(database.Middleware(p, logger.NewNop()))
	router.GET("/api/v1/meals", func(*gin.Context) { panic("handler failed") })

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "/api/v1/meals", http.NoBody)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, p.released)
}
