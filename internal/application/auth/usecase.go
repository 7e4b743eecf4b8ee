package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/exesman-api/internal/application/dto"
	"github.com/jhoicas/exesman-api/internal/domain"
	"github.com/jhoicas/exesman-api/internal/domain/entity"
	"github.com/jhoicas/exesman-api/internal/domain/repository"
	"github.com/jhoicas/exesman-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// El primer usuario de una empresa se registra como admin (bootstrap);
// los siguientes entran como employee y un admin les ajusta el rol después.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound // empresa no existe
	}
	// El manager, si viene, debe existir y pertenecer a la misma empresa.
	if in.ManagerID != nil && *in.ManagerID != "" {
		manager, err := uc.userRepo.GetByID(*in.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil || manager.CompanyID != in.CompanyID {
			return nil, domain.ErrInvalidInput
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	count, err := uc.userRepo.CountByCompany(in.CompanyID)
	if err != nil {
		return nil, err
	}
	role := entity.RoleEmployee
	if count == 0 {
		role = entity.RoleAdmin
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		Email:          in.Email,
		HashedPassword: string(hash),
		FullName:       in.FullName,
		Role:           role,
		CompanyID:      in.CompanyID,
		ManagerID:      in.ManagerID,
		CreatedAt:      time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse mapea la entidad a su DTO de salida (sin el hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
}
