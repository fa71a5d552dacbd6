package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// AccountService registers accounts and checks credentials.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*models.Account, error)
	Login(ctx context.Context, email, password string) (*models.Account, error)
}

type accountServiceImpl struct {
	repo   repository.AccountRepository
	logger *zap.Logger
}

func NewAccountService(repo repository.AccountRepository, logger *zap.Logger) AccountService {
	return &accountServiceImpl{repo: repo, logger: logger}
}

// Register creates the account together with its empty cart.
func (s *accountServiceImpl) Register(ctx context.Context, email, password string) (*models.Account, error) {
	if email == "" || password == "" {
		return nil, errors.ErrInvalidInput
	}

	acct := models.Account{Email: email, Password: password}
	if err := s.repo.CreateAccount(ctx, acct); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.ErrConflict
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("Account registered", zap.String("email", email))
	return &acct, nil
}

// Login compares both fields verbatim. Unknown email and wrong password
// produce the same error.
func (s *accountServiceImpl) Login(ctx context.Context, email, password string) (*models.Account, error) {
	acct, err := s.repo.FindAccount(ctx, email)
	if stderrors.Is(err, repository.ErrNotFound) {
		return nil, errors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if acct.Password != password {
		s.logger.Warn("Login rejected", zap.String("email", email))
		return nil, errors.ErrInvalidCredentials
	}
	return acct, nil
}
