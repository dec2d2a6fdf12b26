package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
	"github.com/scholaris/sis-portal-api/internal/service"
	"github.com/scholaris/sis-portal-api/internal/utils"
)

func setupYearLevelApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:year_level_handler?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.YearLevel{}, &models.AuditLog{}))
	require.NoError(t, db.Exec("DELETE FROM year_levels").Error)
	require.NoError(t, db.Exec("DELETE FROM audit_logs").Error)

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())
	audit := service.NewAuditService(repository.NewAuditLogRepository(db), time.UTC, logger)
	svc := service.NewYearLevelService(repository.NewYearLevelRepository(db), validate, audit, logger)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_name", "Dana Cruz")
		c.Locals("user_role", "admin")
		return c.Next()
	})
	NewYearLevelHandler(svc, logger).Register(app.Group("/api/v1/admin/year-levels"))

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) utils.APIResponse {
	t.Helper()
	defer resp.Body.Close()
	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestYearLevelHandlerAdd(t *testing.T) {
	app, db := setupYearLevelApp(t)

	resp := postJSON(t, app, "/api/v1/admin/year-levels", map[string]string{"name": "  Grade 7  "})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.True(t, envelope.Success)

	var levels []models.YearLevel
	require.NoError(t, db.Find(&levels).Error)
	require.Len(t, levels, 1)
	require.Equal(t, "Grade 7", levels[0].Name)

	var entry models.AuditLog
	require.NoError(t, db.Order("id DESC").First(&entry).Error)
	require.Equal(t, models.AuditCategoryYearLevel, entry.ActionCategory)
	require.Equal(t, "Dana Cruz", entry.User)
}

func TestYearLevelHandlerAddDuplicate(t *testing.T) {
	app, _ := setupYearLevelApp(t)

	resp := postJSON(t, app, "/api/v1/admin/year-levels", map[string]string{"name": "Grade 7"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/v1/admin/year-levels", map[string]string{"name": "Grade 7"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.False(t, envelope.Success)
	require.Equal(t, "year level name already exists", envelope.Error)
}

func TestYearLevelHandlerUpdateMissing(t *testing.T) {
	app, _ := setupYearLevelApp(t)

	body, err := json.Marshal(map[string]string{"name": "Grade 8"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/year-levels/99", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestYearLevelHandlerDelete(t *testing.T) {
	app, db := setupYearLevelApp(t)

	level := models.YearLevel{Name: "Grade 7"}
	require.NoError(t, db.Create(&level).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/year-levels/%d", level.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.YearLevel{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}
