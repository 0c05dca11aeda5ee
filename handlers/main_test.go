package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"menucraft-api/config"
	"menucraft-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB points the global config.DB at a fresh in-memory database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Restaurant{}, &models.Menu{},
		&models.Category{}, &models.Item{}, &models.Template{},
	))
	config.DB = db
	return db
}

// perform invokes a handler directly with an authenticated test
// context, bypassing the router and JWT middleware.
func perform(t *testing.T, handler gin.HandlerFunc, method string, body interface{}, userID uint, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var rdr io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	c.Request = httptest.NewRequest(method, "/", rdr)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		c.Set("userID", userID)
	}
	c.Params = params
	handler(c)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func seedOwner(t *testing.T, db *gorm.DB, userID uint, slug string) models.Restaurant {
	t.Helper()
	require.NoError(t, db.Create(&models.User{ID: userID, Name: "Owner", Email: slug + "@example.com", PasswordHash: "x"}).Error)
	rest := models.Restaurant{OwnerUserID: userID, Name: "R " + slug, Slug: slug}
	require.NoError(t, db.Create(&rest).Error)
	return rest
}
