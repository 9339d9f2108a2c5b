package service

import (
	"fmt"
	"strconv"
	"strings"

	"hrportal/internal/model"
)

const (
	notAvailable = "N/A"

	leaveRequestType     = "Leave Request"
	leaveRequestCategory = "Attendance & Leaves"
	documentCategory     = "Letters & Certificates"
)

// summaryKeys are the form fields tried, in order, to summarize a generic request.
var summaryKeys = []string{"subject", "title", "description", "details", "reason"}

// Normalize maps any request kind onto the unified display shape. It does no
// I/O and tolerates missing employee data and missing form keys.
func Normalize(req model.Request) model.UnifiedRequest {
	out := model.UnifiedRequest{
		ID:                 req.RequestID(),
		Kind:               req.Kind(),
		EmployeeID:         req.OwnerID(),
		EmployeeName:       notAvailable,
		EmployeeExternalID: notAvailable,
		SubmittedAt:        req.SubmissionTime(),
		Status:             req.Canonical(),
		RawStatus:          req.StatusValue(),
		Version:            req.Revision(),
	}
	if emp := req.Owner(); emp != nil {
		out.EmployeeName = orNA(emp.FullName)
		out.EmployeeExternalID = orNA(emp.ExternalID)
		out.Department = emp.Department
	}

	switch r := req.(type) {
	case *model.LeaveRequest:
		out.Type = leaveRequestType
		out.Category = leaveRequestCategory
		out.Summary = fmt.Sprintf("%s, %d day(s) from %s to %s",
			orNA(r.LeaveType), r.DurationDays(),
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	case *model.DocumentRequest:
		out.Type = orNA(r.DocumentType)
		out.Category = documentCategory
		out.Summary = orNA(r.Purpose)
	case *model.GenericRequest:
		out.Type = orNA(r.RequestType)
		out.Category = orNA(r.RequestCategory)
		out.Summary = notAvailable
		for _, key := range summaryKeys {
			if v := FormValue(r.FormData, key); v != notAvailable {
				out.Summary = v
				break
			}
		}
	}
	return out
}

// FormValue renders one key of a schema-less form payload, or "N/A" when the
// key is missing, null or blank.
func FormValue(form model.JSONMap, key string) string {
	v, ok := form[key]
	if !ok || v == nil {
		return notAvailable
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = fmt.Sprint(t)
	}
	return orNA(s)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
