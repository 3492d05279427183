package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hearth/internal/handlers"
	"hearth/internal/hlock"
	"hearth/internal/logger"
	"hearth/internal/middleware"
	"hearth/internal/models"
	"hearth/internal/services"
	"hearth/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:itestdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Household{},
		&models.HouseholdMember{},
		&models.HouseholdCounter{},
		&models.Expense{},
		&models.ExpenseAllocation{},
		&models.Balance{},
		&models.Settlement{},
		&models.Category{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	locks := hlock.NewRegistry()
	ticks := services.TickSource(services.DefaultTickSource)
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	householdService := services.NewHouseholdService(db, locks, ticks)
	balanceService := services.NewBalanceService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, locks, ticks, balanceService, categoryService, nil)
	settlementService := services.NewSettlementService(db, locks, ticks, balanceService, nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	householdHandler := handlers.NewHouseholdHandler(householdService, balanceService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, householdService, auditService)
	settlementHandler := handlers.NewSettlementHandler(settlementService, householdService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, householdService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.GetProfile)

	households := protected.Group("/households")
	households.POST("", householdHandler.Create)
	households.GET("/:id", householdHandler.Get)
	households.DELETE("/:id", householdHandler.Deactivate)
	households.GET("/:id/members", householdHandler.ListMembers)
	households.POST("/:id/members", householdHandler.AddMember)
	households.DELETE("/:id/members/:userId", householdHandler.RemoveMember)
	households.PUT("/:id/members/:userId/allocation", householdHandler.UpdateMemberAllocation)
	households.GET("/:id/balances", householdHandler.ListBalances)
	households.GET("/:id/balance", householdHandler.GetBalance)
	households.POST("/:id/expenses", expenseHandler.Create)
	households.GET("/:id/expenses", expenseHandler.List)
	households.GET("/:id/expenses/:expenseId", expenseHandler.Get)
	households.GET("/:id/expenses/:expenseId/allocations", expenseHandler.GetAllocations)
	households.PUT("/:id/expenses/:expenseId/settled", expenseHandler.MarkSettled)
	households.POST("/:id/settlements", settlementHandler.Create)
	households.GET("/:id/settlements", settlementHandler.List)
	households.GET("/:id/settlements/:settlementId", settlementHandler.Get)
	households.PUT("/:id/settlements/:settlementId/reference", settlementHandler.RecordReference)
	households.POST("/:id/categories", categoryHandler.Create)
	households.GET("/:id/categories", categoryHandler.List)
	households.DELETE("/:id/categories/:categoryId", categoryHandler.Delete)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// errorCode extracts the error code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got: %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the access token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"display_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), user["id"].(string)
}

// createHousehold creates a household and returns its ID.
func (app *testApp) createHousehold(t *testing.T, token, name string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/households", fmt.Sprintf(`{"name":%q}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create household failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(float64)
}

// addMember adds a user to a household.
func (app *testApp) addMember(t *testing.T, token string, householdID float64, userID string) {
	t.Helper()
	path := fmt.Sprintf("/api/v1/households/%.0f/members", householdID)
	rec := app.request("POST", path, fmt.Sprintf(`{"user_id":%q}`, userID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add member failed: %d %s", rec.Code, rec.Body.String())
	}
}
