package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rubhub/provider-directory/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createProvider(t *testing.T, db *gorm.DB, slug string) *model.Provider {
	t.Helper()

	p := model.Provider{Slug: slug, Name: "Provider " + slug, Status: model.ProviderStatusActive}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return &p
}

func strPtr(s string) *string { return &s }

func TestReplaceServices_ReplacesAndRenumbers(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormSectionRepository(db)
	ctx := context.Background()

	p := createProvider(t, db, "spa")

	old := []model.Service{
		{Name: "Old One", SortOrder: 5},
		{Name: "Old Two", SortOrder: 9},
	}
	if err := repo.ReplaceServices(ctx, p.ID, old); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	next := []model.Service{
		{Name: "Deep Tissue", SortOrder: 99},
		{Name: "Swedish", SortOrder: 42},
		{Name: "Hot Stone", SortOrder: 7},
	}
	if err := repo.ReplaceServices(ctx, p.ID, next); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	var got []model.Service
	if err := db.Where("provider_id = ?", p.ID).Order("sort_order").Find(&got).Error; err != nil {
		t.Fatalf("load services: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d services, want 3 (old set must be gone)", len(got))
	}
	wantNames := []string{"Deep Tissue", "Swedish", "Hot Stone"}
	for i, svc := range got {
		if svc.SortOrder != i {
			t.Errorf("service %q sort order = %d, want %d (renumbered from position)", svc.Name, svc.SortOrder, i)
		}
		if svc.Name != wantNames[i] {
			t.Errorf("service at %d = %q, want %q", i, svc.Name, wantNames[i])
		}
	}
}

func TestReplaceContacts_ForcesOwnerAndIgnoresIncomingIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormSectionRepository(db)
	ctx := context.Background()

	owner := createProvider(t, db, "owner")
	other := createProvider(t, db, "other")

	foreign := model.Contact{ProviderID: other.ID, FirstName: "Keep", LastName: "Out"}
	if err := db.Create(&foreign).Error; err != nil {
		t.Fatalf("seed foreign contact: %v", err)
	}

	// Входные элементы приходят с чужим provider_id и выдуманным id:
	// оба должны быть перезаписаны.
	items := []model.Contact{
		{ID: 777, ProviderID: other.ID, FirstName: "Jane", LastName: "Doe", Email: strPtr("jane@x.com")},
	}
	if err := repo.ReplaceContacts(ctx, owner.ID, items); err != nil {
		t.Fatalf("replace contacts: %v", err)
	}

	var got []model.Contact
	if err := db.Where("provider_id = ?", owner.ID).Find(&got).Error; err != nil {
		t.Fatalf("load contacts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d contacts, want 1", len(got))
	}
	if got[0].ID == 777 {
		t.Error("incoming id must not survive the replace")
	}
	if got[0].ProviderID != owner.ID {
		t.Errorf("contact provider_id = %d, want owner %d", got[0].ProviderID, owner.ID)
	}

	// Чужая секция не затронута.
	var otherCount int64
	if err := db.Model(&model.Contact{}).Where("provider_id = ?", other.ID).Count(&otherCount).Error; err != nil {
		t.Fatalf("count foreign contacts: %v", err)
	}
	if otherCount != 1 {
		t.Fatalf("foreign provider has %d contacts, want 1 untouched", otherCount)
	}
}

func TestReplaceContacts_PersistsPrivateFlag(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormSectionRepository(db)
	ctx := context.Background()

	p := createProvider(t, db, "private")

	items := []model.Contact{
		{FirstName: "Hidden", LastName: "Person", IsPublic: false},
		{FirstName: "Open", LastName: "Person", IsPublic: true},
	}
	if err := repo.ReplaceContacts(ctx, p.ID, items); err != nil {
		t.Fatalf("replace contacts: %v", err)
	}

	var hidden model.Contact
	if err := db.Where("first_name = ?", "Hidden").First(&hidden).Error; err != nil {
		t.Fatalf("load contact: %v", err)
	}
	if hidden.IsPublic {
		t.Fatal("IsPublic=false must survive the write, not be overridden by a column default")
	}

	var open model.Contact
	if err := db.Where("first_name = ?", "Open").First(&open).Error; err != nil {
		t.Fatalf("load contact: %v", err)
	}
	if !open.IsPublic {
		t.Fatal("IsPublic=true must survive the write")
	}
}

func TestReplaceLocations_EmptySetClearsSection(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormSectionRepository(db)
	ctx := context.Background()

	p := createProvider(t, db, "clearing")

	seed := []model.Location{
		{Address1: "1 Main St", City: "Oakland", State: "CA", Zip: "94601", Country: "US"},
	}
	if err := repo.ReplaceLocations(ctx, p.ID, seed); err != nil {
		t.Fatalf("seed locations: %v", err)
	}

	if err := repo.ReplaceLocations(ctx, p.ID, nil); err != nil {
		t.Fatalf("clear locations: %v", err)
	}

	var count int64
	if err := db.Model(&model.Location{}).Where("provider_id = ?", p.ID).Count(&count).Error; err != nil {
		t.Fatalf("count locations: %v", err)
	}
	if count != 0 {
		t.Fatalf("got %d locations after clearing, want 0", count)
	}
}
