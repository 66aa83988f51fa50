package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Prestamos-api/internal/application/auth"
	"github.com/jhoicas/Prestamos-api/internal/application/dto"
	"github.com/jhoicas/Prestamos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Prestamos-api/internal/interfaces/http"
)

// fakeUserRepo implementa UserRepository con un único usuario precargado.
type fakeUserRepo struct {
	user *entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		cp := *r.user
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if r.user != nil && r.user.Email == email {
		cp := *r.user
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(u *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(id string) error { return nil }

func buildLoginApp(t *testing.T, password string) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{user: &entity.User{
		ID:           testUserID,
		Name:         "Carlos Admin",
		Email:        "carlos@test.local",
		PasswordHash: string(hash),
		AccessLevel:  entity.AccessAdmin,
	}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})

	app := fiber.New()
	handler := apphttp.NewAuthHandler(uc)
	app.Post("/api/auth/login", handler.Login)
	return app
}

func postLogin(t *testing.T, app *fiber.App, body dto.LoginRequest) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLogin_CredencialesValidas_DevuelveToken(t *testing.T) {
	app := buildLoginApp(t, "claveSegura123")

	resp := postLogin(t, app, dto.LoginRequest{Email: "carlos@test.local", Password: "claveSegura123"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token, "el login exitoso debe incluir un token")
	assert.Equal(t, "carlos@test.local", out.User.Email)
	assert.Equal(t, entity.AccessAdmin, out.User.AccessLevel)
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app := buildLoginApp(t, "claveSegura123")

	resp := postLogin(t, app, dto.LoginRequest{Email: "carlos@test.local", Password: "claveEquivocada"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_UsuarioInexistente_Retorna401(t *testing.T) {
	app := buildLoginApp(t, "claveSegura123")

	resp := postLogin(t, app, dto.LoginRequest{Email: "nadie@test.local", Password: "loQueSea123"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"usuario inexistente debe responder igual que password incorrecto")
}

func TestLogin_CamposFaltantes_Retorna400(t *testing.T) {
	app := buildLoginApp(t, "claveSegura123")

	resp := postLogin(t, app, dto.LoginRequest{Email: "carlos@test.local"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
