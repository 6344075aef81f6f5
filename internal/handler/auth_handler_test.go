package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"servicefinder/internal/model"
	"servicefinder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*model.User)
	return user, args.String(1), args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (*model.User, *model.Provider, string, error) {
	args := m.Called(ctx, identifier, password)
	user, _ := args.Get(0).(*model.User)
	provider, _ := args.Get(1).(*model.Provider)
	return user, provider, args.String(2), args.Error(3)
}

func (m *mockAuthService) GetProfile(ctx context.Context, userID int) (*model.User, *model.Provider, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.User)
	provider, _ := args.Get(1).(*model.Provider)
	return user, provider, args.Error(2)
}

func newAuthTestRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	NewAuthHandler(svc).RegisterAuthRoutes(api, func(c *gin.Context) { c.Next() })
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	svc := new(mockAuthService)
	user := &model.User{ID: 3, Phone: "771234567", Role: model.RoleProvider}
	provider := &model.Provider{ID: 11, UserID: 3, Phone: "771234567"}
	svc.On("Login", mock.Anything, "771234567", "771234567").Return(user, provider, "tok-abc", nil)

	router := newAuthTestRouter(svc)
	w := postJSON(t, router, "/api/auth/login", gin.H{"phone": "771234567", "password": "771234567"})

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token    string         `json:"token"`
			User     model.User     `json:"user"`
			Provider model.Provider `json:"provider"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, "771234567", envelope.Data.User.Phone)
	assert.Equal(t, "771234567", envelope.Data.Provider.Phone)
}

func TestLoginHandler_GenericFailureMessage(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "unknown@example.com", mock.Anything).
		Return(nil, nil, "", service.ErrInvalidCredentials)
	svc.On("Login", mock.Anything, "known@example.com", mock.Anything).
		Return(nil, nil, "", service.ErrInvalidCredentials)

	router := newAuthTestRouter(svc)
	unknownResp := postJSON(t, router, "/api/auth/login", gin.H{"email": "unknown@example.com", "password": "x"})
	knownResp := postJSON(t, router, "/api/auth/login", gin.H{"email": "known@example.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, unknownResp.Code)
	assert.Equal(t, http.StatusUnauthorized, knownResp.Code)
	// Byte-identical bodies: no account enumeration via the login route.
	assert.Equal(t, unknownResp.Body.String(), knownResp.Body.String())
}

func TestLoginHandler_MissingIdentifier(t *testing.T) {
	svc := new(mockAuthService)
	router := newAuthTestRouter(svc)

	w := postJSON(t, router, "/api/auth/login", gin.H{"password": "secret"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterHandler_Conflict(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, "", service.ErrUserAlreadyExists)

	router := newAuthTestRouter(svc)
	w := postJSON(t, router, "/api/auth/register", gin.H{
		"name": "Sam", "email": "taken@example.com", "phone": "771234567", "password": "secret123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var envelope model.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Message)
}
