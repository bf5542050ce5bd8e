package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayra/taller-api/internal/application/auth"
	"github.com/wayra/taller-api/internal/application/dto"
	"github.com/wayra/taller-api/internal/domain"
	"github.com/wayra/taller-api/internal/domain/entity"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(role string) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.users {
		if u.Role == role && u.Status == "active" {
			out = append(out, u)
		}
	}
	return out, nil
}

func buildAuthUC(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo) {
	t.Helper()
	ur := &fakeUserRepo{users: map[string]*entity.User{
		"mec-1": {ID: "mec-1", Email: "juan@taller.com", Name: "Juan",
			Role: entity.RoleMecanico, Status: "active"},
		"mec-2": {ID: "mec-2", Email: "luis@taller.com", Name: "Luis",
			Role: entity.RoleMecanico, Status: "inactive"},
		"adm-1": {ID: "adm-1", Email: "admin@taller.com", Name: "Admin",
			Role: entity.RoleAdminWayraTaller, Status: "active"},
	}}
	uc := auth.NewAuthUseCase(ur, auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "taller-api-test",
	})
	return uc, ur
}

func TestRegisterUser_RolDesconocido(t *testing.T) {
	uc, _ := buildAuthUC(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "x@taller.com", Password: "secreta123", Role: "GERENTE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := buildAuthUC(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "juan@taller.com", Password: "secreta123", Role: entity.RoleMecanico,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestListMechanics_SoloMecanicosActivos(t *testing.T) {
	uc, _ := buildAuthUC(t)

	list, err := uc.ListMechanics()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mec-1", list[0].ID)
	assert.Equal(t, entity.RoleMecanico, list[0].Role)
}
