package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/handler"
	"github.com/scholaris/sis-portal-api/internal/service"
)

type stubReportService struct {
	response dto.ReportSummaryResponse
}

func (s stubReportService) Summary(context.Context, service.AuditActor) (dto.ReportSummaryResponse, error) {
	return s.response, nil
}

func TestReportSummaryContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "report_summary.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	now := time.Now().UTC()
	summary := dto.ReportSummaryResponse{
		ActiveStudents: 42,
		GradeLevelDistribution: []dto.GradeLevelCount{
			{YearLevelID: 1, YearLevel: "Grade 7", Students: 22},
			{YearLevelID: 2, YearLevel: "Grade 8", Students: 20},
		},
		SchoolYears: []dto.SchoolYearResponse{
			{ID: 1, Name: "2026-2027", StartDate: now.AddDate(0, -2, 0), EndDate: now.AddDate(0, 8, 0), Active: true},
		},
		GeneratedAt: now,
		CacheHit:    false,
	}

	serviceStub := stubReportService{response: summary}
	reportHandler := handler.NewReportHandler(serviceStub, zerolog.Nop())

	app := fiber.New()
	reportHandler.Register(app.Group("/api/v1/admin/reports"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reports/summary", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
