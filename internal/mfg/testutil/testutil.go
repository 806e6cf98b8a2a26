package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/config"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/mfg/entity"
	"github.com/thorntonmirandajane/beast-inventory-system-sub001/internal/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TestSchema = "test_mfg"
	JWTSecret  = "beast-inventory-test-secret"
)

// TestEnv holds the resources a handler test works against.
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// projectRoot walks up from this file until it finds go.mod.
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

// SetupTestDB opens a connection into a unique throwaway schema so tests
// never touch each other's tables. The schema is dropped on cleanup.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "beastinv_test")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	// search_path in the DSN so every pooled connection lands in the
	// test schema.
	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.SKU{},
		&entity.BOMEdge{},
		&entity.InventoryRecord{},
		&entity.InventoryTransaction{},
		&entity.Forecast{},
		&entity.ProcessConfig{},
		&entity.Worker{},
		&entity.WorkerSchedule{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a bare gin engine in test mode.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group guarded by the JWT middleware.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken signs a valid access token for a test identity.
func GenerateTestToken(userID, username, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"uid":      userID,
		"username": username,
		"role":     role,
		"iss":      "beast-inventory",
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"jti":      fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// AdminTestToken returns a token carrying the admin role.
func AdminTestToken() string {
	return GenerateTestToken("test-user-001", "test_admin", entity.RoleAdmin)
}

// PlannerTestToken returns a token carrying the planner role.
func PlannerTestToken() string {
	return GenerateTestToken("test-user-002", "test_planner", entity.RolePlanner)
}

// DoRequest executes an HTTP request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the envelope into a generic map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedSKU inserts a catalog SKU.
func SeedSKU(t *testing.T, db *gorm.DB, id, code, kind, process string) *entity.SKU {
	t.Helper()
	sku := &entity.SKU{
		ID:      id,
		Code:    code,
		Name:    code,
		Kind:    kind,
		Process: process,
		Active:  true,
	}
	if err := db.Create(sku).Error; err != nil {
		t.Fatalf("Failed to seed sku %s: %v", code, err)
	}
	return sku
}

// SeedEdge links a parent SKU to a component.
func SeedEdge(t *testing.T, db *gorm.DB, id, parentID, componentID string, qty float64) *entity.BOMEdge {
	t.Helper()
	edge := &entity.BOMEdge{
		ID:             id,
		ParentSKUID:    parentID,
		ComponentSKUID: componentID,
		QtyPerUnit:     qty,
	}
	if err := db.Create(edge).Error; err != nil {
		t.Fatalf("Failed to seed bom edge: %v", err)
	}
	return edge
}

// SeedStock inserts an inventory record.
func SeedStock(t *testing.T, db *gorm.DB, id, skuID, state string, qty float64) *entity.InventoryRecord {
	t.Helper()
	record := &entity.InventoryRecord{
		ID:       id,
		SKUID:    skuID,
		State:    state,
		Quantity: qty,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("Failed to seed inventory record: %v", err)
	}
	return record
}

// NewTestRedis connects to the local redis on a scratch database. Cache
// calls degrade gracefully when no server is listening, so most tests do
// not require one.
func NewTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		DB:   15,
	})
}

// TestConfig returns a config with the JWT secret the test tokens are
// signed with.
func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             JWTSecret,
			AccessTokenExpire:  2 * time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "beast-inventory",
		},
		Planning: config.PlanningConfig{
			ExplosionDepth: 2,
			ReportCacheTTL: time.Minute,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
