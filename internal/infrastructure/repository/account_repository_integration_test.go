package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
	"github.com/pipelinecrm/crm-server/internal/infrastructure/repository"
)

func TestAccountRepositoriesIntegration(t *testing.T) {
	gdb := openTestDB(t)

	userID := "d5987b5f-506d-4d84-934f-d5b5535a64e8"
	companyID := "1b2c3d4e-5f60-4718-89a0-b1c2d3e4f506"
	email := "account-it@example.com"
	for _, stmt := range []string{
		"DELETE FROM companies WHERE user_id = ?",
		"DELETE FROM profiles WHERE id = ?",
		"DELETE FROM users WHERE id = ?",
	} {
		if err := gdb.Exec(stmt, userID).Error; err != nil {
			t.Fatalf("cleanup failed: %v", err)
		}
	}

	ctx := context.Background()
	now := time.Now().UTC()
	users := repository.NewUserRepository(gdb)
	profiles := repository.NewProfileRepository(gdb)
	companies := repository.NewCompanyRepository(gdb)

	if err := users.Create(ctx, &domain.User{ID: userID, Email: email, PasswordHash: "hash", CreatedAt: now}); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	err := users.Create(ctx, &domain.User{ID: "0f0e0d0c-0b0a-4909-8807-060504030201", Email: email, PasswordHash: "hash"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	fullName := "Mario Rossi"
	if err := profiles.Upsert(ctx, &domain.Profile{ID: userID, Email: &email, FullName: &fullName, Role: domain.DefaultRole}); err != nil {
		t.Fatalf("upsert profile failed: %v", err)
	}
	if err := companies.Create(ctx, &domain.Company{ID: companyID, CompanyName: "Rossi Srl", UserID: userID}); err != nil {
		t.Fatalf("create company failed: %v", err)
	}
	if err := profiles.SetCompany(ctx, userID, companyID); err != nil {
		t.Fatalf("set company failed: %v", err)
	}

	avatar := "https://cdn.example.com/avatars/" + userID + ".png"
	if err := profiles.Update(ctx, userID, domain.ProfileChanges{AvatarURL: &avatar}); err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	p, err := profiles.GetByID(ctx, userID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if p.CompanyID == nil || *p.CompanyID != companyID || *p.FullName != fullName || *p.AvatarURL != avatar {
		t.Fatalf("unexpected profile: %+v", p)
	}

	ga := "G-TEST"
	if err := companies.Update(ctx, companyID, domain.CompanyChanges{GAMeasurementID: &ga}); err != nil {
		t.Fatalf("update company failed: %v", err)
	}
	c, err := companies.GetByID(ctx, companyID)
	if err != nil {
		t.Fatalf("get company failed: %v", err)
	}
	if c.CompanyName != "Rossi Srl" || c.GAMeasurementID == nil || *c.GAMeasurementID != ga {
		t.Fatalf("unexpected company: %+v", c)
	}
}
