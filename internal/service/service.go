package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/selfviz/analytics-service/internal/analytics"
	"github.com/selfviz/analytics-service/internal/auth"
	"github.com/selfviz/analytics-service/internal/models"
	"github.com/selfviz/analytics-service/internal/repository"
	"github.com/selfviz/analytics-service/internal/utils/email"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	tokens *auth.TokenService
	mailer *email.Sender // nil when SMTP is not configured
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(repo *repository.Repository, tokens *auth.TokenService, mailer *email.Sender, log *logrus.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, mailer: mailer, log: log}
}

// Register creates a new user with a hashed password. Duplicate email or
// username surfaces as ErrEmailTaken or ErrUsernameTaken, whether caught by
// the pre-check or by the database constraint on a concurrent insert.
func (s *Service) Register(ctx context.Context, username, email, gender string, age int, password string) (*models.User, error) {
	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Age:          age,
		Gender:       gender,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// The pre-check races with concurrent registrations; the unique
		// indexes are authoritative.
		if repository.IsUniqueViolation(err, "users_email_key") {
			return nil, ErrEmailTaken
		}
		if repository.IsUniqueViolation(err, "users_username_key") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if s.mailer != nil {
		go func(to, name string) {
			_ = s.mailer.SendWelcome(to, name)
		}(user.Email, user.Username)
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and returns a signed access token. A missing
// user and a wrong password both return ErrUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %s", user.Username)
	return token, nil
}

// ResolveUser verifies a token and loads the user it identifies. A bad token
// and a token for a user that no longer exists are indistinguishable: both
// return ErrUnauthorized. One point lookup per call, no caching.
func (s *Service) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.FindUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// TrackClick records a feature click for the given user
func (s *Service) TrackClick(ctx context.Context, userID, featureName string) (*models.FeatureClick, error) {
	click := &models.FeatureClick{
		ID:          uuid.NewString(),
		UserID:      userID,
		FeatureName: featureName,
	}
	if err := s.repo.CreateClick(ctx, click); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return click, nil
}

// Analytics computes both aggregations under the same filter set
func (s *Service) Analytics(ctx context.Context, f analytics.Filter) (*models.AnalyticsReport, error) {
	barData, err := s.repo.ClicksByFeature(ctx, f)
	if err != nil {
		return nil, err
	}
	lineData, err := s.repo.ClicksByDay(ctx, f)
	if err != nil {
		return nil, err
	}
	return &models.AnalyticsReport{BarData: barData, LineData: lineData}, nil
}

// Ping reports whether the database is reachable
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
