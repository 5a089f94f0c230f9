package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tieubaoca/docchat-be/repository"
	"github.com/tieubaoca/docchat-be/utils"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repository.NewMemoryStore())

	token, err := svc.Signup(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	claims, err := utils.ParseUserToken(token)
	if err != nil {
		t.Fatalf("ParseUserToken: %v", err)
	}
	if claims.Email != "alice@example.com" || claims.ID == "" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("duplicate email is rejected", func(t *testing.T) {
		if _, err := svc.Signup(ctx, "alice@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("login with the right password succeeds", func(t *testing.T) {
		if _, err := svc.Login(ctx, "alice@example.com", "s3cret"); err != nil {
			t.Errorf("Login: %v", err)
		}
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := svc.Login(ctx, "bob@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
