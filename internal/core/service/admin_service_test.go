package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/interiorfitout/backoffice/internal/core/domain"
)

func TestAdminService_Create(t *testing.T) {
	repo := newStubAdminRepo()
	svc := NewAdminService(repo, zerolog.Nop())

	admin, err := svc.Create(context.Background(), "", " Owner@Fitout.test ", "s3cret-pass")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if admin.Email != "owner@fitout.test" || admin.Name != "owner" || !admin.IsActive {
		t.Fatalf("unexpected admin %+v", admin)
	}
	if admin.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}

	if _, err := svc.Create(context.Background(), "Again", "owner@fitout.test", "s3cret-pass"); !errors.Is(err, domain.ErrAdminExists) {
		t.Fatalf("expected ErrAdminExists, got %v", err)
	}
}

func TestAdminService_Create_Validation(t *testing.T) {
	svc := NewAdminService(newStubAdminRepo(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), "x", "not-an-email", "s3cret-pass"); err == nil {
		t.Fatalf("expected invalid email to be rejected")
	}
	if _, err := svc.Create(context.Background(), "x", "a@b.c", "short"); err == nil {
		t.Fatalf("expected short password to be rejected")
	}
}

func TestAdminService_SetActive_BlocksLogin(t *testing.T) {
	repo := newStubAdminRepo()
	admins := NewAdminService(repo, zerolog.Nop())
	auth := NewAuthService(repo, NewTokenManager(testTokenConfig()), nil, nil, zerolog.Nop())

	if _, err := admins.Create(context.Background(), "Owner", "owner@fitout.test", "s3cret-pass"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := admins.SetActive(context.Background(), "OWNER@fitout.test", false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := auth.Login(context.Background(), "owner@fitout.test", "s3cret-pass", testClient); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected deactivated admin to be rejected, got %v", err)
	}

	if err := admins.SetActive(context.Background(), "nobody@fitout.test", true); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}
