package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"notaryflow/internal/config"
	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

// AuthenticateInput is the DTO for reference-number authentication.
type AuthenticateInput struct {
	ReferenceNumber string
	Day             int
	Month           int
	Year            int
	// Bypass skips the date check, for support-assisted retrieval.
	Bypass bool
}

// AuthResult bundles the authenticated view with a short-lived download
// token.
type AuthResult struct {
	View          *domain.AuthenticatedDocumentView
	DownloadToken string
}

// AuthService matches retrieval requests against stored submissions using
// the reference number plus the document's signed date.
type AuthService interface {
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthResult, error)
	ValidateDownloadToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	repo      port.SubmissionRepository
	jwtSecret []byte
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(repo port.SubmissionRepository, jwtCfg *config.JWTConfig) AuthService {
	return &authService{
		repo:      repo,
		jwtSecret: []byte(jwtCfg.Secret),
		jwtExpiry: jwtCfg.DownloadExpiry,
		jwtIssuer: jwtCfg.Issuer,
	}
}

// Authenticate looks up the submission and verifies the entered date against
// the record's signed date. The numeric calendar comparison is authoritative;
// the formatted-string comparison is advisory and only logged when the two
// disagree.
func (s *authService) Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthResult, error) {
	sub, err := s.repo.GetByReference(ctx, input.ReferenceNumber)
	if err != nil {
		return nil, fmt.Errorf("authService.Authenticate: %w", err)
	}

	signed, ok := sub.SignedDate()
	if !ok {
		return nil, domain.ErrDateUnavailable
	}

	entered := domain.CalendarDate{Day: input.Day, Month: input.Month, Year: input.Year}
	match := entered.Equal(signed)

	stringMatch := entered.String() == signed.String()
	if match != stringMatch {
		log.Printf("authService.Authenticate: date comparison disagreement for %s: numeric=%v string=%v",
			input.ReferenceNumber, match, stringMatch)
	}

	if !match && !input.Bypass {
		return nil, &domain.DateMismatchError{Expected: signed.String()}
	}

	token, err := s.issueDownloadToken(sub.ID)
	if err != nil {
		return nil, fmt.Errorf("authService.Authenticate: %w", err)
	}

	return &AuthResult{
		View: &domain.AuthenticatedDocumentView{
			DocumentID:      sub.ID,
			ReferenceNumber: sub.ReferenceNumber,
			DocumentData:    sub,
			DateSigned:      signed.String(),
		},
		DownloadToken: token,
	}, nil
}

func (s *authService) issueDownloadToken(submissionID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   submissionID.String(),
		Issuer:    s.jwtIssuer,
		Audience:  jwt.ClaimStrings{"download"},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing download token: %w", err)
	}
	return signed, nil
}

// ValidateDownloadToken parses and verifies a download token and returns the
// submission id it authorizes.
func (s *authService) ValidateDownloadToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(s.jwtIssuer), jwt.WithAudience("download"))
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrUnauthorized
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}
