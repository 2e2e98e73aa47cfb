package httpapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rubhub/provider-directory/internal/model"
	"github.com/rubhub/provider-directory/internal/repository"
	"github.com/rubhub/provider-directory/internal/service"
)

func newTestHandler(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	users := repository.NewGormUserRepository(db)
	providers := repository.NewGormProviderRepository(db)
	taxonomy := repository.NewGormTaxonomyRepository(db)
	sections := repository.NewGormSectionRepository(db)

	identity := service.NewIdentityService(db, users, []byte("test-secret"))
	profile := service.NewProfileService(providers, sections)
	dir := service.NewDirectoryService(providers, taxonomy)

	h := NewHandler(identity, profile, dir, slog.Default())
	return h.Routes(), db
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// registerAndLogin прогоняет полный цикл регистрации и входа,
// возвращая токен для защищённых запросов.
func registerAndLogin(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "jane@example.com", "password": "correct-horse",
		"firstName": "Jane", "lastName": "Doe",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "correct-horse",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	h, _ := newTestHandler(t)

	registerAndLogin(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "jane@example.com", "password": "correct-horse",
		"firstName": "Jane", "lastName": "Doe",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestProviderEndpoints_RequireToken(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/provider/services", "", []any{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/v1/provider/services", "not-a-token", []any{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", rec.Code)
	}
}

func TestReplaceServicesAndPublicProfile(t *testing.T) {
	h, db := newTestHandler(t)
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/provider/services", token, []map[string]any{
		{"name": "Deep Tissue", "price": 85.0},
		{"name": "Swedish", "price": 65.0},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("replace services status = %d, body %s", rec.Code, rec.Body)
	}

	var provider model.Provider
	if err := db.First(&provider).Error; err != nil {
		t.Fatalf("load provider: %v", err)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/providers/"+provider.Slug, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body %s", rec.Code, rec.Body)
	}

	var got model.Provider
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if len(got.Services) != 2 {
		t.Fatalf("profile has %d services, want 2", len(got.Services))
	}
	if got.Services[0].Name != "Deep Tissue" || got.Services[0].SortOrder != 0 {
		t.Fatalf("first service = %+v, want Deep Tissue at sort order 0", got.Services[0])
	}
}

func TestReplaceEvents_DateRoundTrip(t *testing.T) {
	h, db := newTestHandler(t)
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/provider/events", token, []map[string]any{
		{"name": "Open House", "startDate": "2026-09-15T00:00:00Z", "country": "US"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("replace events status = %d, body %s", rec.Code, rec.Body)
	}

	var provider model.Provider
	if err := db.First(&provider).Error; err != nil {
		t.Fatalf("load provider: %v", err)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/providers/"+provider.Slug, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, body %s", rec.Code, rec.Body)
	}

	var got struct {
		Events []struct {
			Name      string `json:"name"`
			StartDate string `json:"startDate"`
		} `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if len(got.Events) != 1 || got.Events[0].Name != "Open House" {
		t.Fatalf("profile events = %+v", got.Events)
	}
	if got.Events[0].StartDate[:10] != "2026-09-15" {
		t.Fatalf("start date = %q, want the submitted calendar date back", got.Events[0].StartDate)
	}
}

func TestReplaceEvents_MissingStartDateRejected(t *testing.T) {
	h, _ := newTestHandler(t)
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/provider/events", token, []map[string]any{
		{"name": "No Date"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing start date status = %d, want 400", rec.Code)
	}
}

func TestProfile_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/providers/no-such-slug", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestDirectorySearch(t *testing.T) {
	h, db := newTestHandler(t)

	providers := []model.Provider{
		{Slug: "healing-hands", Name: "Healing Hands", Status: model.ProviderStatusActive},
		{Slug: "willow-spa", Name: "Willow Spa", Status: model.ProviderStatusActive},
	}
	for i := range providers {
		if err := db.Create(&providers[i]).Error; err != nil {
			t.Fatalf("seed provider: %v", err)
		}
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/directory?q=Willow", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", rec.Code, rec.Body)
	}

	var page struct {
		Items []model.Provider `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode search response: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Slug != "willow-spa" {
		t.Fatalf("search response = %+v", page)
	}
}

func TestUpdateBio_Validation(t *testing.T) {
	h, _ := newTestHandler(t)
	token := registerAndLogin(t, h)

	rec := doJSON(t, h, http.MethodPut, "/api/v1/provider/bio", token, map[string]string{
		"name": "  ", "bio": "whatever",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty name status = %d, want 400", rec.Code)
	}
}
