package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/synaptica/aurea-api/internal/application/dto"
	"github.com/synaptica/aurea-api/internal/domain"
	"github.com/synaptica/aurea-api/internal/domain/entity"
	"github.com/synaptica/aurea-api/internal/domain/repository"
	"github.com/synaptica/aurea-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	accountRepo repository.AccountRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(accountRepo repository.AccountRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{accountRepo: accountRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta: hashea password con bcrypt y persiste. Las cuentas
// nuevas arrancan en plan free con rol standard.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AccountResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.accountRepo.FindByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Plan:         entity.PlanFree,
		Role:         entity.RoleStandard,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Login verifica email/password, genera JWT y retorna token + cuenta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accountRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.Email, account.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Account: *toAccountResponse(account),
	}, nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	ready := a.FiscalLink != nil && a.FiscalLink.Ready
	return &dto.AccountResponse{
		ID:            a.ID,
		Email:         a.Email,
		Plan:          a.Plan,
		Role:          a.Role,
		IsFiscalReady: ready,
		CreatedAt:     a.CreatedAt,
	}
}
