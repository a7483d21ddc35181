package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/service"
)

func newImportHandler(repo *fakeStudentRepo) *ImportHandler {
	importer := service.NewImportService(repo, zap.NewNop())
	dashboard := service.NewDashboardService(repo, nil, time.Minute, zap.NewNop())
	return NewImportHandler(importer, service.NewMetricsService(), dashboard)
}

func multipartRequest(t *testing.T, files map[string]string) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/students/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeStudentRepo{}
	handler := newImportHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = multipartRequest(t, map[string]string{
		"students.csv": "SerialNo,Name,Grade\n101,Ahmed Khan,5\n102,Sara Bibi,3\n",
	})

	handler.Import(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, repo.students, 2)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var result service.ImportResult
	require.NoError(t, json.Unmarshal(envelope.Data, &result))
	assert.Equal(t, 2, result.Summary.Created)
	assert.Len(t, result.Students, 2)
}

func TestImportHandlerNoFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newImportHandler(&fakeStudentRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = multipartRequest(t, nil)

	handler.Import(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportHandlerBadFileStillReported(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeStudentRepo{}
	handler := newImportHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = multipartRequest(t, map[string]string{
		"good.csv":  "SerialNo,Name\n101,Ahmed Khan\n",
		"empty.csv": "",
	})

	handler.Import(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var result service.ImportResult
	require.NoError(t, json.Unmarshal(envelope.Data, &result))
	assert.Equal(t, 1, result.Summary.Created)
	assert.Equal(t, 1, result.Summary.Errors)
}
