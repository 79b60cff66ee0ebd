package service

import (
	"context"
	"testing"
	"time"

	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/pkg/apperror"
	"github.com/medetbek/servicepos-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

func newAuthEnv(t *testing.T) (*AuthService, *testEnv) {
	t.Helper()
	env := newTestEnv()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cashier := &entity.Cashier{
		ID:        env.cashierID,
		ShopID:    env.shopID,
		FirstName: "Aibek",
		Email:     "aibek@example.com",
		Password:  string(hash),
		Role:      "cashier",
	}
	env.store.mu.Lock()
	env.store.cashiers[cashier.ID] = cashier
	env.store.mu.Unlock()

	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(&fakeCashierRepo{s: env.store}, jwtManager), env
}

func TestLoginIssuesTokenPair(t *testing.T) {
	auth, env := newAuthEnv(t)

	pair, err := auth.Login(context.Background(), "aibek@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token in pair")
	}
	if pair.Cashier.ID != env.cashierID {
		t.Errorf("cashier = %s, want %s", pair.Cashier.ID, env.cashierID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth, _ := newAuthEnv(t)

	_, err := auth.Login(context.Background(), "aibek@example.com", "wrong")
	if err != apperror.ErrInvalidCredentials {
		t.Fatalf("err = %v, want invalid credentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	auth, _ := newAuthEnv(t)

	_, err := auth.Login(context.Background(), "nobody@example.com", "secret123")
	if err != apperror.ErrInvalidCredentials {
		t.Fatalf("err = %v, want invalid credentials", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	auth, env := newAuthEnv(t)
	ctx := context.Background()

	pair, err := auth.Login(ctx, "aibek@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := auth.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("empty token in refreshed pair")
	}
	if refreshed.Cashier.ID != env.cashierID {
		t.Errorf("cashier = %s, want %s", refreshed.Cashier.ID, env.cashierID)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	auth, _ := newAuthEnv(t)

	_, err := auth.Refresh(context.Background(), "not-a-token")
	if err != apperror.ErrInvalidToken {
		t.Fatalf("err = %v, want invalid token", err)
	}
}

func TestRefreshRejectsDeletedCashier(t *testing.T) {
	auth, env := newAuthEnv(t)
	ctx := context.Background()

	pair, err := auth.Login(ctx, "aibek@example.com", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	env.store.mu.Lock()
	delete(env.store.cashiers, env.cashierID)
	env.store.mu.Unlock()

	if _, err := auth.Refresh(ctx, pair.RefreshToken); err != apperror.ErrInvalidToken {
		t.Fatalf("err = %v, want invalid token", err)
	}
}

func TestAccessTokenCarriesIdentity(t *testing.T) {
	env := newTestEnv()
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := jwtManager.GenerateAccessToken(env.cashierID, env.shopID, "aibek@example.com", []string{"cashier"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := jwtManager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.CashierID != env.cashierID {
		t.Errorf("cashier id = %s, want %s", claims.CashierID, env.cashierID)
	}
	if claims.ShopID != env.shopID {
		t.Errorf("shop id = %s, want %s", claims.ShopID, env.shopID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "cashier" {
		t.Errorf("roles = %v", claims.Roles)
	}

	if _, err := utils.NewJWTManager("other-secret", time.Minute, time.Minute).ValidateAccessToken(token); err == nil {
		t.Error("token validated under a different secret")
	}
}
