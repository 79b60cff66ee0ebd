package service

import (
	"context"

	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/pkg/apperror"
	"github.com/medetbek/servicepos-api/pkg/utils"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles cashier authentication
type AuthService struct {
	cashierRepo repository.CashierRepository
	jwtManager  *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(cashierRepo repository.CashierRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		cashierRepo: cashierRepo,
		jwtManager:  jwtManager,
	}
}

// TokenPair holds the access/refresh token response
type TokenPair struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Cashier      *entity.Cashier `json:"cashier"`
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	cashier, err := s.cashierRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cashier.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(cashier)
	if err != nil {
		return nil, err
	}

	log.Info().Str("cashier_id", cashier.ID.String()).Msg("Cashier logged in")
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	cashierID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	cashier, err := s.cashierRepo.GetByID(ctx, cashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(cashier)
}

func (s *AuthService) issueTokens(cashier *entity.Cashier) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(cashier.ID, cashier.ShopID, cashier.Email, []string{cashier.Role})
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(cashier.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		Cashier:      cashier,
	}, nil
}
