package history

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandlerHistogram(t *testing.T) {
	svc, _, patientID := newService(t)
	ctx := context.Background()
	for _, status := range []string{StatusAttended, StatusAttended, StatusWaiting} {
		if _, err := svc.RecordOutcome(ctx, patientID, status); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/visits", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Histogram(c); err != nil {
		t.Fatalf("Histogram: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var counts map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if counts["attended"] != 2 || counts["waiting"] != 1 || counts["total"] != 3 {
		t.Errorf("counts = %v, want attended=2 waiting=1 total=3", counts)
	}
}

func TestHandlerCreate(t *testing.T) {
	svc, repo, patientID := newService(t)
	h := NewHandler(svc)

	body := fmt.Sprintf(`{"patient_id":%q,"status":"attended"}`, patientID)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(repo.entries) != 1 {
		t.Errorf("ledger size = %d, want 1", len(repo.entries))
	}
}

func TestHandlerCreateInvalidStatus(t *testing.T) {
	svc, _, patientID := newService(t)
	h := NewHandler(svc)

	body := fmt.Sprintf(`{"patient_id":%q,"status":"no-show"}`, patientID)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/history", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}

func TestHandlerAttended(t *testing.T) {
	svc, _, patientID := newService(t)
	if _, err := svc.RecordOutcome(context.Background(), patientID, StatusAttended); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/visits/attended", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Attended(c); err != nil {
		t.Fatalf("Attended: %v", err)
	}

	var summary StatusCount
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Status != StatusAttended || summary.Count != 1 {
		t.Errorf("summary = %+v, want attended/1", summary)
	}
}

func TestHandlerExport(t *testing.T) {
	svc, _, patientID := newService(t)
	if _, err := svc.RecordOutcome(context.Background(), patientID, StatusWaiting); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/visits/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Export(c); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(got, ".xlsx") {
		t.Errorf("content disposition = %q, want xlsx attachment", got)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

func TestHandlerUpdateBadID(t *testing.T) {
	svc, _, _ := newService(t)
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/history/not-a-uuid", strings.NewReader(`{"status":"attended"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Update(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}
