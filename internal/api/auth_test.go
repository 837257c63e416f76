package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

func TestRegister(t *testing.T) {
	a := newTestAPI(t)
	req := types.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"}

	a.auth.On("Register", mock.Anything, mock.MatchedBy(func(r *types.RegisterRequest) bool {
		return r.Email == "ann@example.com" && r.Name == "Ann"
	})).Return(&types.AuthResponse{UserID: a.userID, Token: "jwt"}, nil).Once()

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", req, false)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp types.AuthResponse
	decode(t, w, &resp)
	assert.Equal(t, "jwt", resp.Token)
	assert.Equal(t, a.userID, resp.UserID)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	a := newTestAPI(t)
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "123"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	a.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := newTestAPI(t)
	a.auth.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrUserExists).Once()

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{Name: "Ann", Email: "ann@example.com", Password: "secret1"}, false)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	a := newTestAPI(t)
	a.auth.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials).Once()

	w := a.do(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "ann@example.com", Password: "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), errorBody(t, w))
}

func TestLoginUnexpectedError(t *testing.T) {
	a := newTestAPI(t)
	a.auth.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	w := a.do(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "ann@example.com", Password: "pw"}, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to log in", errorBody(t, w))
}

func TestAnonymousSignIn(t *testing.T) {
	a := newTestAPI(t)
	a.auth.On("SignInAnonymously", mock.Anything).Return(&types.AuthResponse{UserID: a.userID, Token: "jwt", Anonymous: true}, nil).Once()

	w := a.do(t, http.MethodPost, "/api/v1/auth/anonymous", nil, false)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp types.AuthResponse
	decode(t, w, &resp)
	assert.True(t, resp.Anonymous)
}

func TestLogoutForgetsRecommendations(t *testing.T) {
	a := newTestAPI(t)
	a.recommendations.On("Forget", a.userID).Once()

	w := a.do(t, http.MethodPost, "/api/v1/auth/logout", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutRequiresToken(t *testing.T) {
	a := newTestAPI(t)
	w := a.do(t, http.MethodPost, "/api/v1/auth/logout", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
