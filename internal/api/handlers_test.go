// internal/api/handlers_test.go
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"minutes-service/internal/common/config"
	"minutes-service/internal/common/database"
	"minutes-service/internal/common/logger"
	"minutes-service/internal/directory"
	"minutes-service/internal/models"
	"minutes-service/internal/notify"
	"minutes-service/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const testSecret = "test-secret"

type stubSender struct {
	sent []*ses.SendEmailInput
}

func (s *stubSender) SendEmail(_ context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error) {
	s.sent = append(s.sent, input)
	return &ses.SendEmailOutput{}, nil
}

func createTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, *stubSender) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewTestLogger(t)
	cfg := &config.Config{
		App:    config.AppConfig{Name: "minutes-service", Version: "1.0.0"},
		Server: config.ServerConfig{Address: ":0", AdminSecret: testSecret},
	}

	data := &directory.Data{
		ProjectManagers: []models.ProjectManager{
			{Name: "张三", Level: "高级", Department: "IT系统事业部"},
			{Name: "张三", Level: "中级", Department: "云网事业部"},
		},
		Contacts: models.ContactDirectory{
			"政企客户部": {
				Leader:  models.Contact{Name: "陈总", Email: "chen@example.com"},
				Manager: models.Contact{Name: "刘经理", Email: "liu@example.com"},
			},
			"IT系统事业部": {
				Leader:  models.Contact{Name: "黄总", Email: "huang@example.com"},
				Manager: models.Contact{Name: "周经理", Email: "zhou@example.com"},
			},
		},
	}

	sender := &stubSender{}
	srv := NewServer(
		cfg,
		store.NewRecordStore(&database.PostgresClient{DB: db}, log),
		nil,
		directory.NewService(data, nil, time.Minute, log),
		notify.NewMailer(sender, "noreply@example.com", true, log),
		log,
	)
	return srv, mock, sender
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// ==========================
// Health and Save Tests
// ==========================

func TestHandleHealth(t *testing.T) {
	srv, _, _ := createTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), "minutes-service")
}

func TestHandleSave(t *testing.T) {
	srv, mock, _ := createTestServer(t)
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO records`).
		WithArgs(sqlmock.AnyArg(), "智慧园区平台建设", "SJ2026001", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	rec := doRequest(t, srv, http.MethodPost, "/api/save",
		`{"projectName":"智慧园区平台建设","businessCode":"SJ2026001"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
	assert.Contains(t, rec.Body.String(), `"id"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleSave_InvalidSnapshot(t *testing.T) {
	srv, _, _ := createTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/save", `{"projectName":123}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "SNAPSHOT_INVALID")
}

// ==========================
// Document Generation Tests
// ==========================

func TestHandleGenerate(t *testing.T) {
	srv, _, _ := createTestServer(t)
	body := `{"projectName":"智慧园区平台建设","businessCode":"SJ2026001"}`

	tests := []struct {
		docType string
		title   string
		header  string
	}{
		{"opportunity", "商机评估会纪要", "商机评估会"},
		{"bidding", "投标评估会纪要", "投标评估会"},
		{"handoff", "项目交底会纪要", "项目交底会"},
	}
	for _, tt := range tests {
		t.Run(tt.docType, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/generate/"+tt.docType, body)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.title)
			assert.Contains(t, rec.Body.String(), tt.header)
			assert.Contains(t, rec.Body.String(), "智慧园区平台建设")
		})
	}
}

func TestHandleGenerate_UnknownType(t *testing.T) {
	srv, _, _ := createTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/generate/summary", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")
}

// ==========================
// Derivation Tests
// ==========================

func TestHandleAttendees(t *testing.T) {
	srv, _, _ := createTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/attendees", `{
		"meetingType": "商机评估会",
		"ironTriangle": "项目经理：张三（IT系统事业部）\n销售经理：李四（政企客户部）",
		"budgetAmount": "600000",
		"procurement": "是"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "项目经理：张三【IT系统事业部】")
	assert.Contains(t, rec.Body.String(), "采购评估")
}

func TestHandleRecipients_AutoDetect(t *testing.T) {
	srv, _, _ := createTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/recipients", `{
		"ironTriangle": "销售经理：\n李四(政企客户部)",
		"deliveryDetails": [
			{"类型": "牵头交付事业部", "事业部": "IT系统事业部"}
		]
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chen@example.com")
	assert.Contains(t, rec.Body.String(), "huang@example.com")
}

func TestHandleLookupManager(t *testing.T) {
	srv, _, _ := createTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/lookup-manager",
		`{"ironTriangle": "项目经理：张三（云网事业部）"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"name":"张三"`)
	// The department hint puts the matching directory row first.
	assert.Less(t, strings.Index(body, "云网事业部"), strings.Index(body, "IT系统事业部"))
}

func TestHandleLookupManager_NoProjectManager(t *testing.T) {
	srv, _, _ := createTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/lookup-manager",
		`{"ironTriangle": "销售经理：李四（政企客户部）"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDepartments(t *testing.T) {
	srv, _, _ := createTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/departments", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "delivery_departments")
	assert.Contains(t, rec.Body.String(), "政企客户部")
}

func TestHandleExportSnapshot(t *testing.T) {
	srv, _, _ := createTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/export-snapshot",
		`{"projectName":"智慧园区平台建设","businessCode":"SJ2026001"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	disposition := rec.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "智慧园区平台建设(SJ2026001)_")
	assert.Contains(t, disposition, ".json")
	assert.Contains(t, rec.Body.String(), "deliveryDetails")
}

func TestHandleSendNotice(t *testing.T) {
	srv, _, sender := createTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/send-notice", `{
		"recipients": "陈总 <chen@example.com>； 刘经理 <liu@example.com>",
		"subject": "商机评估会纪要",
		"body": "会议纪要正文"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recipients":2`)
	require.Len(t, sender.sent, 1)
	assert.Len(t, sender.sent[0].Destination.ToAddresses, 2)
}

// ==========================
// Admin Console Tests
// ==========================

func TestAdminEndpoints_RejectBadSecret(t *testing.T) {
	srv, _, _ := createTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"list", http.MethodPost, "/api/get-all-records", `{"secret":"wrong"}`},
		{"delete", http.MethodPost, "/api/delete-record/id-1", `{"secret":"wrong"}`},
		{"delete batch", http.MethodPost, "/api/delete-batch", `{"secret":"wrong","ids":["id-1"]}`},
		{"export excel", http.MethodGet, "/api/export-excel?secret=wrong", ""},
		{"export batch", http.MethodPost, "/api/export-batch", `{"secret":"wrong","ids":["id-1"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), "AUTHENTICATION_ERROR")
		})
	}
}

func TestHandleGetAllRecords(t *testing.T) {
	srv, mock, _ := createTestServer(t)
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records`).
		WithArgs(nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, project_name, business_code, created_at FROM records`).
		WithArgs(nil, nil, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_name", "business_code", "created_at"}).
			AddRow("id-1", "智慧园区平台建设", "SJ2026001", created))

	rec := doRequest(t, srv, http.MethodPost, "/api/get-all-records",
		`{"secret":"test-secret","page":1,"per_page":10}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"total_items":1`)
	assert.Contains(t, body, `"current_page":1`)
	assert.Contains(t, body, "智慧园区平台建设")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleDeleteRecord(t *testing.T) {
	srv, mock, _ := createTestServer(t)

	mock.ExpectExec(`DELETE FROM records WHERE id = \$1`).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doRequest(t, srv, http.MethodPost, "/api/delete-record/id-1",
		`{"secret":"test-secret"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "记录已删除")
}

func TestHandleDeleteBatch(t *testing.T) {
	srv, mock, _ := createTestServer(t)

	mock.ExpectExec(`DELETE FROM records WHERE id = ANY`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	rec := doRequest(t, srv, http.MethodPost, "/api/delete-batch",
		`{"secret":"test-secret","ids":["id-1","id-2"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":2`)
}

func TestHandleDeleteBatch_NoIDs(t *testing.T) {
	srv, _, _ := createTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/delete-batch",
		`{"secret":"test-secret","ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExportExcel(t *testing.T) {
	srv, mock, _ := createTestServer(t)
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, project_name, business_code, payload, created_at`).
		WithArgs(nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_name", "business_code", "payload", "created_at"}).
			AddRow("id-1", "智慧园区平台建设", "SJ2026001", []byte(`{"projectName":"智慧园区平台建设"}`), created))

	rec := doRequest(t, srv, http.MethodGet, "/api/export-excel?secret=test-secret", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "records_")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestHandleExportBatch(t *testing.T) {
	srv, mock, _ := createTestServer(t)

	mock.ExpectQuery(`SELECT id, project_name, business_code, payload, created_at`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_name", "business_code", "payload", "created_at"}))

	rec := doRequest(t, srv, http.MethodPost, "/api/export-batch",
		`{"secret":"test-secret","ids":["id-1"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.Bytes())
}
