package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/rwangliu/library-lending-server/internal/api"
	"github.com/rwangliu/library-lending-server/internal/config"
	"github.com/rwangliu/library-lending-server/internal/models"
	"github.com/rwangliu/library-lending-server/internal/repository"
	"github.com/rwangliu/library-lending-server/internal/service"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository *repository.PostgresRepository
	Service    service.Service
	JWTSecret  []byte
	DB         *sqlx.DB

	AdminID    string
	AdminJWT   string
	MemberID   string
	MemberJWT  string
	Member2ID  string
	Member2JWT string
}

// SetupTestContext creates a new test context with initialized dependencies
// and a clean test database seeded with one admin and two members.
func SetupTestContext(t *testing.T) *TestContext {
	// Load configuration from environment
	cfg := config.LoadConfig()

	// Always run against the dedicated test database
	if cfg.Database.TestDBName != "" {
		cfg.Database.DBName = cfg.Database.TestDBName
	} else {
		cfg.Database.DBName = "library_test"
	}

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "test-secret-key"
	}

	// Set up database
	db, err := config.SetupDatabase(cfg)
	require.NoError(t, err, "Failed to set up test database")

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret, 24*time.Hour)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	tc := &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		DB:         db,
	}

	cleanupTestDatabase(t, db)

	tc.AdminID, tc.AdminJWT = tc.CreateTestUser(t, "admin@test.local", "Test Admin", models.RoleAdmin)
	tc.MemberID, tc.MemberJWT = tc.CreateTestUser(t, "member@test.local", "Test Member", models.RoleMember)
	tc.Member2ID, tc.Member2JWT = tc.CreateTestUser(t, "member2@test.local", "Second Member", models.RoleMember)

	return tc
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(tc *TestContext) {
	if tc.DB != nil {
		cleanupTestDatabase(nil, tc.DB)
		tc.DB.Close()
	}
}

// cleanupTestDatabase removes all test data, child tables first
func cleanupTestDatabase(t *testing.T, db *sqlx.DB) {
	for _, table := range []string{"borrow_records", "books", "users"} {
		_, err := db.Exec("DELETE FROM " + table)
		if t != nil && err != nil {
			t.Logf("Warning: Failed to clean %s: %v", table, err)
		}
	}
}

// CreateTestUser inserts a user directly and returns its ID and a signed JWT
func (tc *TestContext) CreateTestUser(t *testing.T, email, name, role string) (string, string) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}

	err = tc.Repository.CreateUser(context.Background(), user)
	require.NoError(t, err, "Failed to create test user")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString(tc.JWTSecret)
	require.NoError(t, err, "Failed to generate JWT token")

	return user.ID, tokenString
}

// CreateTestBook inserts a catalog entry directly and returns it
func (tc *TestContext) CreateTestBook(t *testing.T, title, isbn, genre string, copies int) *models.Book {
	book := models.NewBook(title, "Test Author", isbn, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), genre, copies, "")
	err := tc.Repository.CreateBook(context.Background(), book)
	require.NoError(t, err, "Failed to create test book")
	return book
}

// GetBook reloads a book directly from the repository
func (tc *TestContext) GetBook(t *testing.T, bookID string) *models.Book {
	book, err := tc.Repository.GetBookByID(context.Background(), bookID)
	require.NoError(t, err)
	require.NotNil(t, book)
	return book
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
