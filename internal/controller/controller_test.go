package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/model"
	"eng_assess_backend/internal/service"
	"eng_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type memAssessments map[uint]*model.Assessment

func (m memAssessments) Create(_ context.Context, a *model.Assessment) error {
	a.ID = uint(len(m) + 1)
	m[a.ID] = a
	return nil
}

func (m memAssessments) FindByID(_ context.Context, id uint) (*model.Assessment, error) {
	if a, ok := m[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memAssessments) List(context.Context) ([]model.Assessment, error) {
	out := make([]model.Assessment, 0, len(m))
	for _, a := range m {
		out = append(out, *a)
	}
	return out, nil
}

func (m memAssessments) Update(_ context.Context, a *model.Assessment) error {
	m[a.ID] = a
	return nil
}

func (m memAssessments) Delete(_ context.Context, id uint) error {
	if _, ok := m[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m, id)
	return nil
}

type memSubmissions struct {
	created []model.AssessmentSubmission
}

func (m *memSubmissions) Create(_ context.Context, s *model.AssessmentSubmission) error {
	s.ID = model.GenerateUUID()
	m.created = append(m.created, *s)
	return nil
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

type memUsers map[uint]*model.User

func (m memUsers) Create(_ context.Context, u *model.User) error {
	u.ID = uint(len(m) + 1)
	m[u.ID] = u
	return nil
}

func (m memUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memUsers) FindByName(_ context.Context, name string) (*model.User, error) {
	for _, u := range m {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m memUsers) UpdateLastActive(context.Context, uint, time.Time) error { return nil }

func (m memUsers) ListByRole(context.Context, model.UserRole) ([]model.User, error) {
	return nil, nil
}

func (m memUsers) Delete(_ context.Context, id uint) error {
	delete(m, id)
	return nil
}

func seedAssessments() memAssessments {
	a := &model.Assessment{
		Title:            "Circuits",
		EngineeringField: model.ElectricalEngineering,
		Level:            model.Beginner,
		Duration:         20,
		Questions: datatypes.JSONSlice[model.Question]{
			{QuestionText: "Ohm?", Options: []string{"V=IR", "V=I/R", "V=R/I", "V=I+R"}, CorrectAnswer: 0},
			{QuestionText: "Unit?", Options: []string{"Volt", "Ohm", "Amp", "Watt"}, CorrectAnswer: 1},
		},
	}
	a.ID = 1
	empty := &model.Assessment{Title: "Broken", EngineeringField: model.CivilEngineering, Level: model.Beginner}
	empty.ID = 2
	return memAssessments{1: a, 2: empty}
}

// withUser 模拟认证中间件写入身份
func withUser(id uint, role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(util.UserContextKey, &util.Claims{UserID: id, Role: role})
		c.Next()
	}
}

func setup(t *testing.T) (*gin.Engine, *memSubmissions) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := util.RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}

	subs := &memSubmissions{}
	assessments := service.NewAssessmentService(seedAssessments(), subs, noopInvalidator{})
	users := memUsers{}
	auth := service.NewAuthService(users, &config.Config{JWT: config.JWTConfig{Secret: "s", ExpireTime: time.Hour}})

	student := NewStudentController(assessments, nil)
	authCtl := NewAuthController(auth)
	admin := NewAssessmentController(assessments)
	userCtl := NewUserController(service.NewUserService(users, noopInvalidator{}))

	r := gin.New()
	r.POST("/api/auth/register", authCtl.Register)
	r.POST("/api/auth/login", authCtl.Login)
	s := r.Group("/api/student", withUser(5, model.Student))
	s.GET("/assessments/:id/start", student.StartAssessment)
	s.POST("/assessments/:id/submit", student.SubmitAssessment)
	d := r.Group("/api/dashboard", withUser(1, model.Admin))
	d.POST("/assessments", admin.Create)
	d.DELETE("/students/:id", userCtl.DeleteStudent)
	return r, subs
}

func send(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestSubmitAssessment(t *testing.T) {
	r, subs := setup(t)

	w := send(r, http.MethodPost, "/api/student/assessments/1/submit", map[string]interface{}{
		"answers":   map[string]int{"0": 0, "1": 2},
		"timeSpent": 90,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["score"].(float64) != 50 || body["status"] != "completed" || body["success"] != true {
		t.Errorf("body = %v", body)
	}
	if len(subs.created) != 1 || subs.created[0].UserID != 5 {
		t.Errorf("stored = %+v", subs.created)
	}
}

func TestSubmitAssessmentAnswerShapes(t *testing.T) {
	tests := []struct {
		name    string
		answers string
		score   float64
		correct float64
	}{
		{"array", `[0,1]`, 100, 2},
		{"nulls are unanswered", `{"0":null,"1":null}`, 0, 0},
		{"string values miss", `{"0":"0","1":1}`, 50, 1},
		{"missing answers", `null`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, subs := setup(t)
			req := httptest.NewRequest(http.MethodPost, "/api/student/assessments/1/submit",
				bytes.NewBufferString(`{"answers":`+tt.answers+`,"timeSpent":10}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			body := decode(t, w)
			details := body["details"].(map[string]interface{})
			if body["score"].(float64) != tt.score || details["correctAnswers"].(float64) != tt.correct {
				t.Errorf("body = %v", body)
			}
			if len(subs.created) != 1 {
				t.Errorf("stored = %d submissions", len(subs.created))
			}
		})
	}
}

func TestSubmitAssessmentErrors(t *testing.T) {
	r, subs := setup(t)

	tests := []struct {
		name    string
		path    string
		code    int
		message string
	}{
		{"bad id", "/api/student/assessments/abc/submit", http.StatusBadRequest, "Invalid id"},
		{"missing", "/api/student/assessments/9/submit", http.StatusNotFound, "Assessment not found"},
		{"no questions", "/api/student/assessments/2/submit", http.StatusInternalServerError, "Assessment is misconfigured"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(r, http.MethodPost, tt.path, map[string]interface{}{"answers": map[string]int{}})
			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d", w.Code, tt.code)
			}
			body := decode(t, w)
			if body["success"] != false || body["message"] != tt.message {
				t.Errorf("body = %v", body)
			}
		})
	}
	if len(subs.created) != 0 {
		t.Errorf("failed submits should not be stored: %d", len(subs.created))
	}
}

func TestStartAssessmentHidesAnswers(t *testing.T) {
	r, _ := setup(t)

	w := send(r, http.MethodGet, "/api/student/assessments/1/start", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("correctAnswer")) {
		t.Errorf("student view leaks answers: %s", w.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	r, _ := setup(t)

	w := send(r, http.MethodPost, "/api/auth/register", map[string]string{"email": "bad", "password": "123"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	errs, ok := body["errors"].(map[string]interface{})
	if !ok || body["message"] != "Validation failed" {
		t.Fatalf("body = %v", body)
	}
	for _, field := range []string{"username", "email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %s: %v", field, errs)
		}
	}
}

func TestRegisterThenLogin(t *testing.T) {
	r, _ := setup(t)
	creds := map[string]string{"username": "ada", "email": "ada@example.com", "password": "secret1"}

	w := send(r, http.MethodPost, "/api/auth/register", creds)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	w = send(r, http.MethodPost, "/api/auth/register", creds)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d", w.Code)
	}

	w = send(r, http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", w.Code)
	}

	w = send(r, http.MethodPost, "/api/auth/login", map[string]string{"email": "ada@example.com", "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d", w.Code)
	}
	if body := decode(t, w); body["token"] == "" || body["success"] != true {
		t.Errorf("login body = %v", body)
	}
}

func TestCreateAssessmentValidation(t *testing.T) {
	r, _ := setup(t)

	w := send(r, http.MethodPost, "/api/dashboard/assessments", map[string]interface{}{
		"title":            "Thermo",
		"engineeringField": "Chemical Engineering",
		"level":            "beginner",
		"duration":         15,
		"questions": []map[string]interface{}{
			{"questionText": "Q", "options": []string{"a", "b", "c", "d"}, "correctAnswer": 7},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = send(r, http.MethodPost, "/api/dashboard/assessments", map[string]interface{}{
		"title":            "Thermo",
		"engineeringField": "Chemical Engineering",
		"level":            "beginner",
		"duration":         15,
		"questions": []map[string]interface{}{
			{"questionText": "Q", "options": []string{"a", "b", "c", "d"}, "correctAnswer": 2},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := decode(t, w); body["message"] != "Assessment created successfully" {
		t.Errorf("body = %v", body)
	}
}

func TestDeleteMissingStudent(t *testing.T) {
	r, _ := setup(t)

	w := send(r, http.MethodDelete, "/api/dashboard/students/42", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decode(t, w); body["message"] != "Student not found" {
		t.Errorf("body = %v", body)
	}
}
