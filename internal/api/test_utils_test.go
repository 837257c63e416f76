package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealdeck/backend/internal/middleware"
	"github.com/pageza/mealdeck/backend/internal/mocks"
	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

const testToken = "test-token"

// testAPI is a fully routed API backed by mocks.
type testAPI struct {
	router          *gin.Engine
	userID          uuid.UUID
	auth            *mocks.MockAuthService
	lookup          *mocks.MockLookup
	favorites       *mocks.MockFavoritesService
	notes           *mocks.MockNotesService
	ratings         *mocks.MockRatingService
	profile         *mocks.MockProfileService
	recommendations *mocks.MockRecommendationService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &testAPI{
		userID:          uuid.New(),
		auth:            new(mocks.MockAuthService),
		lookup:          new(mocks.MockLookup),
		favorites:       new(mocks.MockFavoritesService),
		notes:           new(mocks.MockNotesService),
		ratings:         new(mocks.MockRatingService),
		profile:         new(mocks.MockProfileService),
		recommendations: new(mocks.MockRecommendationService),
	}

	a.auth.On("ValidateToken", testToken).Return(&types.TokenClaims{UserID: a.userID, Name: "Tester"}, nil).Maybe()
	a.auth.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken).Maybe()

	handlers := &Handlers{
		Health:          NewHealthHandler(nil),
		Auth:            NewAuthHandler(a.auth, a.recommendations),
		Recipes:         NewRecipeHandler(a.lookup, a.ratings, a.favorites),
		Favorites:       NewFavoritesHandler(a.favorites, a.lookup),
		Notes:           NewNotesHandler(a.notes),
		Ratings:         NewRatingHandler(a.ratings),
		Profile:         NewProfileHandler(a.profile),
		Recommendations: NewRecommendationHandler(a.recommendations),
	}

	a.router = gin.New()
	a.router.Use(middleware.Recovery())
	RegisterRoutes(a.router, handlers, a.auth, nil)

	t.Cleanup(func() {
		a.lookup.AssertExpectations(t)
		a.favorites.AssertExpectations(t)
		a.notes.AssertExpectations(t)
		a.ratings.AssertExpectations(t)
		a.profile.AssertExpectations(t)
		a.recommendations.AssertExpectations(t)
	})
	return a
}

// do sends a request. A nil body sends none; authed adds the test token.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	decode(t, w, &resp)
	msg, _ := resp["error"].(string)
	return msg
}

func TestHealthCheck(t *testing.T) {
	a := newTestAPI(t)
	w := a.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
}
