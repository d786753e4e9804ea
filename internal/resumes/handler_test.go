package resumes_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-wizard-backend/internal/bootstrap"
	"resume-wizard-backend/internal/shared/config"
)

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func profileBody() string {
	return `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"summary": "Backend engineer with six years of Go.",
		"experience": [
			{
				"company": "Acme Corp",
				"role": "Senior Engineer",
				"start": "2021",
				"end": "Present",
				"bullets": ["Built the billing pipeline", "Led a team of four"]
			}
		],
		"education": [
			{"institution": "State University", "degree": "BSc", "field": "Computer Science"}
		],
		"key_skills": ["Go", "Postgres"],
		"technical_skills": ["Docker", "Kubernetes"]
	}`
}

func generateResume(t *testing.T, router *gin.Engine) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/generate-resume", strings.NewReader(profileBody()))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Status string `json:"status"`
		Data   struct {
			ResumeID string `json:"resume_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Status != "success" {
		t.Fatalf("expected status success, got %q", created.Status)
	}
	if created.Data.ResumeID == "" {
		t.Fatalf("expected resume_id, got empty")
	}
	return created.Data.ResumeID
}

func TestGenerateListDownloadDelete(t *testing.T) {
	router := buildRouter(t)
	resumeID := generateResume(t, router)

	// List should include the new resume.
	reqList := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	addGuestHeader(reqList)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respList.Code)
	}
	var list []struct {
		ResumeID  string `json:"resume_id"`
		Name      string `json:"name"`
		MimeType  string `json:"mime_type"`
		SizeBytes int64  `json:"size_bytes"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 resume, got %d", len(list))
	}
	if list[0].ResumeID != resumeID {
		t.Fatalf("expected resume %s, got %s", resumeID, list[0].ResumeID)
	}
	if list[0].Name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %s", list[0].Name)
	}
	if list[0].SizeBytes <= 0 {
		t.Fatalf("expected positive size, got %d", list[0].SizeBytes)
	}

	// Download returns the DOCX bytes.
	reqDl := httptest.NewRequest(http.MethodGet, "/api/resumes/"+resumeID+"/download", nil)
	addGuestHeader(reqDl)
	respDl := httptest.NewRecorder()
	router.ServeHTTP(respDl, reqDl)

	if respDl.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respDl.Code, respDl.Body.String())
	}
	if ct := respDl.Header().Get("Content-Type"); !strings.Contains(ct, "wordprocessingml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := respDl.Header().Get("Content-Disposition"); !strings.Contains(cd, "Jane_Doe_Resume.docx") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	body := respDl.Body.Bytes()
	if len(body) < 4 || !bytes.HasPrefix(body, []byte("PK")) {
		t.Fatalf("expected zip payload, got %d bytes", len(body))
	}

	// Delete, then verify the resume is gone.
	reqDel := httptest.NewRequest(http.MethodDelete, "/api/resumes/"+resumeID, nil)
	addGuestHeader(reqDel)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)

	if respDel.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", respDel.Code, respDel.Body.String())
	}
	var deleted struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(respDel.Body).Decode(&deleted); err != nil {
		t.Fatalf("decode delete response: %v", err)
	}
	if deleted.Message != "Resume deleted" {
		t.Fatalf("unexpected delete message %q", deleted.Message)
	}

	reqGone := httptest.NewRequest(http.MethodGet, "/api/resumes/"+resumeID, nil)
	addGuestHeader(reqGone)
	respGone := httptest.NewRecorder()
	router.ServeHTTP(respGone, reqGone)

	if respGone.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", respGone.Code)
	}
	var notFound struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(respGone.Body).Decode(&notFound); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if notFound.Detail != "resume not found" {
		t.Fatalf("expected detail, got %q", notFound.Detail)
	}
}

func TestGenerateRejectsProfileWithoutName(t *testing.T) {
	router := buildRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-resume", strings.NewReader(`{"email":"jane@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if payload.Detail == "" {
		t.Fatalf("expected a detail message for the client")
	}
}

func TestResumesAreScopedToOwner(t *testing.T) {
	router := buildRouter(t)
	resumeID := generateResume(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes/"+resumeID, nil)
	req.Header.Set("X-Guest-Id", "someone-else")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestImportExtractsTextFromGeneratedDocument(t *testing.T) {
	router := buildRouter(t)
	resumeID := generateResume(t, router)

	// Download the generated document, then feed it back through import.
	reqDl := httptest.NewRequest(http.MethodGet, "/api/resumes/"+resumeID+"/download", nil)
	addGuestHeader(reqDl)
	respDl := httptest.NewRecorder()
	router.ServeHTTP(respDl, reqDl)
	if respDl.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respDl.Code)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "resume.docx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(respDl.Body.Bytes()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/resumes/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var imported struct {
		FileName string `json:"fileName"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&imported); err != nil {
		t.Fatalf("decode import response: %v", err)
	}
	if imported.FileName != "resume.docx" {
		t.Fatalf("expected fileName resume.docx, got %q", imported.FileName)
	}
	if !strings.Contains(imported.Text, "Jane Doe") {
		t.Fatalf("expected extracted text to contain the candidate name, got:\n%s", imported.Text)
	}
}

func TestImportRejectsUnsupportedFiles(t *testing.T) {
	router := buildRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("plain text")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/resumes/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListWithoutResumesReturnsEmptyArray(t *testing.T) {
	router := buildRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}
