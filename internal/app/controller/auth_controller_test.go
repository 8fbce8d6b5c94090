package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/internal/app/service"
	"github.com/carhive/carhive-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 168*time.Hour)
	authController := NewAuthController(authService, 15*time.Minute)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)

	return authController, router, testDB
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register_Success(t *testing.T) {
	_, router, testDB := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Username: "newbuyer",
		Email:    "newbuyer@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var user model.User
	require.NoError(t, testDB.Where("username = ?", "newbuyer").First(&user).Error)
	assert.Equal(t, model.RoleUser, user.Role)

	// The password hash never appears in the response
	assert.NotContains(t, w.Body.String(), user.PasswordHash)
}

func TestAuthController_Register_DuplicateUsername(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	payload := RegisterRequest{
		Username: "newbuyer",
		Email:    "newbuyer@example.com",
		Password: "password123",
	}
	w := postJSON(router, "/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/register", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthController_Register_Validation(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	tests := []struct {
		name    string
		payload RegisterRequest
	}{
		{
			name:    "Short username",
			payload: RegisterRequest{Username: "ab", Email: "a@example.com", Password: "password123"},
		},
		{
			name:    "Invalid email",
			payload: RegisterRequest{Username: "validname", Email: "not-an-email", Password: "password123"},
		},
		{
			name:    "Short password",
			payload: RegisterRequest{Username: "validname", Email: "a@example.com", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/register", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Username: "newbuyer",
		Email:    "newbuyer@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/login", LoginRequest{
		Username: "newbuyer",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["access_token"])
	assert.NotEmpty(t, response["refresh_token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/register", RegisterRequest{
		Username: "newbuyer",
		Email:    "newbuyer@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/login", LoginRequest{
		Username: "newbuyer",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_Login_UnknownUser(t *testing.T) {
	_, router, _ := setupAuthControllerTest(t)

	w := postJSON(router, "/login", LoginRequest{
		Username: "ghost",
		Password: "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
