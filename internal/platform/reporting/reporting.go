// Package reporting serves the report-generation endpoint. A request names
// a report type and carries a parameters object whose shape depends on that
// type; the handler validates the shape, resolves the rows, and hands back
// the dataset with a run id. Rendering the dataset into the requested
// output format is a downstream concern.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/hims/hims/internal/platform/auth"
	"github.com/hims/hims/pkg/wire"
)

const ipBillSQL = `
SELECT b.admission_no, b.bill_no, b.bill_date, b.total_amount, b.paid_amount,
       p.code AS patient_uhid, p.first_name, p.last_name
FROM ip_bill b
JOIN patient p ON p.code = b.patient_uhid AND p.hospital_id = b.hospital_id
WHERE b.admission_no = $1 AND b.patient_uhid = $2 AND b.hospital_id = $3
ORDER BY b.bill_date`

const labReportSQL = `
SELECT o.lab_no, o.bill_no, o.test_id, o.test_name, o.result_value,
       o.result_unit, o.reference_range, o.opip_ind, o.reported_at
FROM lab_order o
WHERE o.bill_no = $1 AND o.hospital_id = $2 AND o.lab_no = $3
  AND o.opip_ind = $4 AND o.test_id = ANY(string_to_array($5, ','))
ORDER BY o.test_id`

// Handler provides the reporting API.
type Handler struct {
	pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{pool: pool}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/reports/generate", h.Generate, auth.RequireRole("admin", "frontdesk"))
}

// Generate validates the request envelope and parameter shape, runs the
// report query, and returns the dataset.
func (h *Handler) Generate(c echo.Context) error {
	var req wire.ReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sql, args, err := buildQuery(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.executeSQL(c.Request().Context(), sql, args...)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("report query failed: %v", err))
	}

	return c.JSON(http.StatusOK, wire.ReportResult{
		RunID:      uuid.NewString(),
		ReportType: req.ReportType,
		OutputType: req.OutputType,
		Rows:       rows,
	})
}

// buildQuery checks the envelope and decodes the per-type parameter shape
// into the query and its arguments.
func buildQuery(req wire.ReportRequest) (string, []any, error) {
	if req.OutputType != "PDF" {
		return "", nil, fmt.Errorf("outputType must be PDF, got %q", req.OutputType)
	}

	switch req.ReportType {
	case wire.ReportTypeIPBill:
		var p wire.IPBillParams
		if err := json.Unmarshal(req.Parameters, &p); err != nil {
			return "", nil, fmt.Errorf("invalid parameters for %s", req.ReportType)
		}
		if p.AdmissionNo == "" {
			return "", nil, fmt.Errorf("admission_no is required")
		}
		if p.PatientUHID == "" {
			return "", nil, fmt.Errorf("patient_uhid is required")
		}
		return ipBillSQL, []any{p.AdmissionNo, p.PatientUHID, p.HospitalID}, nil

	case wire.ReportTypeLabReport:
		var p wire.LabReportParams
		if err := json.Unmarshal(req.Parameters, &p); err != nil {
			return "", nil, fmt.Errorf("invalid parameters for %s", req.ReportType)
		}
		for field, value := range map[string]string{
			"billNo":   p.BillNo,
			"testIds":  p.TestIDs,
			"opip_ind": p.OpIpInd,
			"lab_no":   p.LabNo,
		} {
			if value == "" {
				return "", nil, fmt.Errorf("%s is required", field)
			}
		}
		return labReportSQL, []any{p.BillNo, p.HospitalID, p.LabNo, p.OpIpInd, p.TestIDs}, nil

	default:
		return "", nil, fmt.Errorf("unknown reportType %q", req.ReportType)
	}
}

// executeSQL runs a query and returns the rows as column-name maps.
func (h *Handler) executeSQL(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	rows, err := h.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	results := []map[string]any{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]any, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
