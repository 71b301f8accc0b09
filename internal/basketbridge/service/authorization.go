package service

import (
	"context"
	"errors"
	"fmt"

	"basket-bridge/internal/basketbridge/data"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrLoginTaken         = errors.New("login is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	OperatorIDClaimName = "operator_id"
)

type OperatorRepository interface {
	InsertOperator(ctx context.Context, login, passwordHash string) (operatorID int, err error)
	GetOperatorCredentials(ctx context.Context, login string) (operatorID int, passwordHash string, err error)
}

type TokenFactory interface {
	Generate(extraClaims map[string]string) (string, error)
}

type Authorization struct {
	operatorRepository OperatorRepository
	transactionManager TransactionManager
	tokenFactory       TokenFactory
}

func NewAuthorization(
	operatorRepository OperatorRepository,
	transactionManager TransactionManager,
	tokenFactory TokenFactory,
) *Authorization {
	return &Authorization{
		operatorRepository: operatorRepository,
		transactionManager: transactionManager,
		tokenFactory:       tokenFactory,
	}
}

func (a *Authorization) Register(ctx context.Context, login string, password string) (string, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	operatorID, err := a.operatorRepository.InsertOperator(ctx, login, string(passwordHash))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUniqueConstraintViolation):
			return "", ErrLoginTaken
		default:
			return "", fmt.Errorf("error inserting operator: %w", err)
		}
	}

	return a.generateToken(operatorID)
}

func (a *Authorization) Login(ctx context.Context, login string, password string) (string, error) {
	operatorID, passwordHash, err := a.operatorRepository.GetOperatorCredentials(ctx, login)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidLogin):
			return "", ErrInvalidCredentials
		default:
			return "", fmt.Errorf("error validating operator: %w", err)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return a.generateToken(operatorID)
}

func (a *Authorization) generateToken(operatorID int) (string, error) {
	payload := map[string]string{
		OperatorIDClaimName: fmt.Sprintf("%d", operatorID),
	}
	token, err := a.tokenFactory.Generate(payload)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}
