package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ymaeda/pomodoro-tracker/internal/constants"
	"github.com/ymaeda/pomodoro-tracker/internal/database"
	"github.com/ymaeda/pomodoro-tracker/internal/dto"
	"github.com/ymaeda/pomodoro-tracker/internal/errors"
	"github.com/ymaeda/pomodoro-tracker/internal/models"
	"github.com/ymaeda/pomodoro-tracker/internal/repository"
	"github.com/ymaeda/pomodoro-tracker/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Pomodoro{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		router:      r,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/register", map[string]string{
		"username":     "testuser",
		"password":     "password123",
		"confirmation": "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "testuser", response.Username)
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	env := setupAuthTestEnv(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"empty username", map[string]string{
			"username": "", "password": "password123", "confirmation": "password123",
		}},
		{"empty password", map[string]string{
			"username": "testuser", "password": "", "confirmation": "",
		}},
		{"mismatched confirmation", map[string]string{
			"username": "testuser", "password": "password123", "confirmation": "password124",
		}},
		{"short password", map[string]string{
			"username": "testuser", "password": "12345", "confirmation": "12345",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, env.router, "/api/auth/register", tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	env.db.Model(&models.User{}).Count(&count)
	require.Zero(t, count, "no user rows should be created by invalid input")
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"username":     "testuser",
		"password":     "password123",
		"confirmation": "password123",
	}

	w := postJSON(t, env.router, "/api/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.router, "/api/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username:     "testuser",
		Password:     "password123",
		Confirmation: "password123",
	})
	require.NoError(t, err)

	w := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"username": "testuser",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "testuser", response.Username)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username:     "testuser",
		Password:     "password123",
		Confirmation: "password123",
	})
	require.NoError(t, err)

	wrongPassword := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"username": "testuser",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)

	unknownUser := postJSON(t, env.router, "/api/auth/login", map[string]string{
		"username": "nosuchuser",
		"password": "x",
	})
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	// Both failures must be indistinguishable so usernames cannot be
	// enumerated through the login endpoint.
	var wrongPasswordErr, unknownUserErr errors.APIError
	require.NoError(t, json.Unmarshal(wrongPassword.Body.Bytes(), &wrongPasswordErr))
	require.NoError(t, json.Unmarshal(unknownUser.Body.Bytes(), &unknownUserErr))
	require.Equal(t, wrongPasswordErr.Message, unknownUserErr.Message)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := postJSON(t, env.router, "/api/auth/logout", map[string]string{})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username:     "current-user",
		Password:     "password123",
		Confirmation: "password123",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Username)
}
