package performance_test

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/handler"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
	"github.com/scholaris/sis-portal-api/internal/service"
)

func setupSystemLogPerformanceApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:system_log_perf?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	base := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		entry := models.AuditLog{
			User:           "System",
			Role:           "System",
			ActionCategory: models.AuditCategorySystem,
			ActionType:     models.AuditActionView,
			Description:    fmt.Sprintf("Probe %d", i),
			TargetType:     "System",
			Status:         models.AuditStatusSuccess,
			SeverityLevel:  models.AuditSeverityInfo,
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	audit := service.NewAuditService(repository.NewAuditLogRepository(db), time.UTC, zerolog.Nop())
	logHandler := handler.NewSystemLogHandler(audit, zerolog.Nop())

	app := fiber.New()
	logHandler.Register(app.Group("/api/v1/admin/logs"))

	return app
}

func TestSystemLogListingP95LatencyBelow250ms(t *testing.T) {
	app := setupSystemLogPerformanceApp(t)

	runs := 40
	durations := make([]time.Duration, 0, runs)

	for i := 0; i < runs; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/logs", nil)
		start := time.Now()
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		if i == 0 {
			var envelope struct {
				Data dto.SystemLogListResponse `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
			require.Len(t, envelope.Data.Items, 100, "listing is capped")
			require.Equal(t, int64(500), envelope.Data.Total)
		} else {
			_, _ = io.Copy(io.Discard, resp.Body)
		}
		resp.Body.Close()
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	index := int(math.Ceil(0.95*float64(len(durations)))) - 1
	if index < 0 {
		index = 0
	}
	p95 := durations[index]

	require.LessOrEqual(t, p95, 250*time.Millisecond)
}
