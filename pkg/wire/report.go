package wire

import "encoding/json"

// Report types accepted by POST /api/reports/generate.
const (
	ReportTypeIPBill    = "IPBill"
	ReportTypeLabReport = "LabReport"
)

// ReportRequest is the report-generation envelope. Parameters is decoded
// into the shape selected by ReportType.
type ReportRequest struct {
	OutputType string          `json:"outputType"`
	ReportType string          `json:"reportType"`
	Parameters json.RawMessage `json:"parameters"`
}

// IPBillParams are the parameters for an in-patient bill report.
// AdmissionNo and PatientUHID are required.
type IPBillParams struct {
	AdmissionNo string `json:"admission_no"`
	PatientUHID string `json:"patient_uhid"`
	HospitalID  int    `json:"hospital_id"`
	AppUserID   int    `json:"appuserid"`
}

// LabReportParams are the parameters for a lab report. BillNo, TestIDs,
// OpIpInd and LabNo are required; the profile ids are optional refinements.
type LabReportParams struct {
	BillNo            string `json:"billNo"`
	HospitalID        int    `json:"hospitalID"`
	TestIDs           string `json:"testIds"`
	ProfileSingleID   string `json:"profileSingleId"`
	ProfileMultipID   string `json:"profileMultipId"`
	ProfileDropdownID string `json:"profileDropdownId"`
	OpIpInd           string `json:"opip_ind"`
	LabNo             string `json:"lab_no"`
}

// ReportResult is the response: the resolved rows plus a run id for tracing.
// Rendering to the requested output format happens downstream.
type ReportResult struct {
	RunID      string           `json:"runId"`
	ReportType string           `json:"reportType"`
	OutputType string           `json:"outputType"`
	Rows       []map[string]any `json:"rows"`
}

// LoginRequest is the POST /api/auth/login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}
