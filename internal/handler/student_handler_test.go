package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gpsbazar/school-records-api/internal/models"
	"github.com/gpsbazar/school-records-api/internal/service"
)

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      map[string]interface{} `json:"error"`
	Pagination map[string]interface{} `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type fakeStudentRepo struct {
	students []models.Student
}

func (f *fakeStudentRepo) LoadAll(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, len(f.students))
	for i := range f.students {
		out[i] = f.students[i].Clone()
	}
	return out, nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	for i := range f.students {
		if f.students[i].ID == id {
			cp := f.students[i].Clone()
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentRepo) Save(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = "generated"
	}
	for i := range f.students {
		if f.students[i].ID == student.ID {
			f.students[i] = student.Clone()
			return nil
		}
	}
	f.students = append(f.students, student.Clone())
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id string) error {
	for i := range f.students {
		if f.students[i].ID == id {
			f.students = append(f.students[:i], f.students[i+1:]...)
			break
		}
	}
	return nil
}

func newStudentHandler(repo *fakeStudentRepo) *StudentHandler {
	students := service.NewStudentService(repo, nil, zap.NewNop())
	dashboard := service.NewDashboardService(repo, nil, time.Minute, zap.NewNop())
	return NewStudentHandler(students, dashboard)
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestStudentHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{students: []models.Student{
		{ID: "s1", SerialNo: "101", Name: "Ahmed Khan", Grade: models.Grade5},
		{ID: "s2", SerialNo: "102", Name: "Sara Bibi", Grade: models.Grade3},
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students?grade=5", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var students []models.Student
	require.NoError(t, json.Unmarshal(envelope.Data, &students))
	require.Len(t, students, 1)
	assert.Equal(t, "Ahmed Khan", students[0].Name)
	assert.Equal(t, float64(1), envelope.Pagination["total_count"])
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeStudentRepo{}
	handler := newStudentHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/students", map[string]string{
		"serial_no":   "101",
		"name":        "Ahmed Khan",
		"father_name": "Bilal Khan",
		"gender":      "Male",
		"grade":       "5",
	})

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.students, 1)
	assert.Equal(t, "Ahmed Khan", repo.students[0].Name)
}

func TestStudentHandlerCreateValidationFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPost, "/students", map[string]string{
		"serial_no": "101",
		"name":      "Ahmed Khan",
	})

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStudentHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed"}}}
	handler := newStudentHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/students/s1", nil)
	c.Params = gin.Params{{Key: "id", Value: "s1"}}

	handler.Delete(c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.students)
}

func TestStudentHandlerSaveMarks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed"}}}
	handler := newStudentHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPut, "/students/s1/results/1", map[string]interface{}{
		"marks":   map[string]string{"Math": "88"},
		"remarks": "well done",
	})
	c.Params = gin.Params{{Key: "id", Value: "s1"}, {Key: "semester", Value: "1"}}

	handler.SaveMarks(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.students[0].Results.Sem1)
	assert.Equal(t, 88, repo.students[0].Results.Sem1.Marks[models.SubjectMath])
}

func TestStudentHandlerSaveMarksBadSemester(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStudentHandler(&fakeStudentRepo{students: []models.Student{{ID: "s1", Name: "Ahmed"}}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = jsonRequest(http.MethodPut, "/students/s1/results/annual", map[string]interface{}{})
	c.Params = gin.Params{{Key: "id", Value: "s1"}, {Key: "semester", Value: "annual"}}

	handler.SaveMarks(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
