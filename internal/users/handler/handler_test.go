package handler_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacthub/internal/auth/revocation"
	"contacthub/internal/jwttoken"
	"contacthub/internal/users/handler"
	"contacthub/internal/users/service"
	"contacthub/internal/users/store"
	"contacthub/pkg/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := jwttoken.New("test-signing-key", "contacthub", 15*time.Minute)
	trl := revocation.NewMemoryTRL()
	users := service.New(store.NewMemory(), tokens,
		service.WithLogger(logger),
		service.WithTokenRevoker(trl),
	)

	r := chi.NewRouter()
	r.Mount("/api/users", handler.New(users, tokens, trl, logger).Routes())
	return r
}

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	})
	rec := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	testutil.AssertJSONContains(t, rec, "email", "alice@example.com")

	body := testutil.UnmarshalResponse[map[string]any](t, rec)
	assert.NotEmpty(t, (*body)["id"])
	assert.NotContains(t, rec.Body.String(), "s3cret", "password must never appear in responses")
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice",
	})
	rec := testutil.DoRequest(router, req)

	testutil.AssertErrorEnvelope(t, rec, http.StatusBadRequest, "Validation Failed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)

	first := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	}))
	testutil.AssertStatus(t, first, http.StatusCreated)

	second := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "imposter", "email": "alice@example.com", "password": "other",
	}))
	testutil.AssertErrorEnvelope(t, second, http.StatusBadRequest, "Validation Failed")
}

func TestLoginAndCurrent(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	}))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "alice@example.com", "password": "s3cret",
	}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	login := testutil.UnmarshalResponse[map[string]string](t, rec)
	token := (*login)["token"]
	require.NotEmpty(t, token)

	req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/api/users/current"), token)
	rec = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertJSONContains(t, rec, "username", "alice")
	testutil.AssertJSONContains(t, rec, "email", "alice@example.com")
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	}))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	wrongPassword := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}))
	testutil.AssertErrorEnvelope(t, wrongPassword, http.StatusUnauthorized, "Unauthorized")

	unknownEmail := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "nobody@example.com", "password": "wrong",
	}))
	testutil.AssertErrorEnvelope(t, unknownEmail, http.StatusUnauthorized, "Unauthorized")

	// The two failure modes must be indistinguishable to the caller.
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestCurrentWithoutToken(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/users/current"))
	testutil.AssertErrorEnvelope(t, rec, http.StatusUnauthorized, "Unauthorized")
}

func TestLogoutRevokesToken(t *testing.T) {
	router := newTestRouter(t)

	rec := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "s3cret",
	}))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	rec = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/users/login", map[string]string{
		"email": "alice@example.com", "password": "s3cret",
	}))
	token := (*testutil.UnmarshalResponse[map[string]string](t, rec))["token"]
	require.NotEmpty(t, token)

	rec = testutil.DoRequest(router, testutil.WithBearer(testutil.NewRequest(t, http.MethodPost, "/api/users/logout"), token))
	testutil.AssertStatus(t, rec, http.StatusOK)

	rec = testutil.DoRequest(router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/api/users/current"), token))
	testutil.AssertErrorEnvelope(t, rec, http.StatusUnauthorized, "Unauthorized")
}
