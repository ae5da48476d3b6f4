package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agricopilot/entities"
	"agricopilot/pkg/ai"
	"agricopilot/pkg/auth"
)

type fakeUserRepo struct {
	users    map[string]*entities.User
	profiles map[uint]*entities.FarmerProfile
	nextID   uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[string]*entities.User{},
		profiles: map[uint]*entities.FarmerProfile{},
		nextID:   1,
	}
}

func (f *fakeUserRepo) CreateWithProfile(u *entities.User, p *entities.FarmerProfile) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.Email] = u
	p.UserID = u.ID
	f.profiles[u.ID] = p
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uint) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ProfileByUserID(id uint) (*entities.FarmerProfile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SaveProfile(p *entities.FarmerProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

func jsonContext(t *testing.T, e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	h := New(repo, ai.NewMock(), "secret")
	e := echo.New()

	c, rec := jsonContext(t, e, http.MethodPost, "/api/auth/register",
		`{"email": " Farmer@Example.COM ", "password": "secret1"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// email is normalized and a session cookie is set
	u, err := repo.FindByEmail("farmer@example.com")
	require.NoError(t, err)
	assert.True(t, u.CheckPassword("secret1"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	uid, err := auth.ParseToken("secret", cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)

	// the empty profile exists right away
	_, err = repo.ProfileByUserID(u.ID)
	require.NoError(t, err)

	c, rec = jsonContext(t, e, http.MethodPost, "/api/auth/login",
		`{"email": "farmer@example.com", "password": "secret1"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h := New(newFakeUserRepo(), ai.NewMock(), "secret")
	e := echo.New()

	cases := []struct {
		body string
		want string
	}{
		{`{"email": "", "password": "secret1"}`, "Email and password are required."},
		{`{"email": "a@b.c", "password": ""}`, "Email and password are required."},
		{`{"email": "a@b.c", "password": "short"}`, "Password must be at least 6 characters."},
	}
	for _, tc := range cases {
		c, rec := jsonContext(t, e, http.MethodPost, "/api/auth/register", tc.body)
		require.NoError(t, h.Register(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.want, body["error"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	h := New(repo, ai.NewMock(), "secret")
	e := echo.New()

	c, _ := jsonContext(t, e, http.MethodPost, "/api/auth/register",
		`{"email": "a@b.c", "password": "secret1"}`)
	require.NoError(t, h.Register(c))

	c, rec := jsonContext(t, e, http.MethodPost, "/api/auth/register",
		`{"email": "A@B.C", "password": "secret2"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	h := New(repo, ai.NewMock(), "secret")
	e := echo.New()

	c, _ := jsonContext(t, e, http.MethodPost, "/api/auth/register",
		`{"email": "a@b.c", "password": "secret1"}`)
	require.NoError(t, h.Register(c))

	c, rec := jsonContext(t, e, http.MethodPost, "/api/auth/login",
		`{"email": "a@b.c", "password": "wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid email or password.", body["error"])
}

func TestMeWithoutSession(t *testing.T) {
	h := New(newFakeUserRepo(), ai.NewMock(), "secret")
	e := echo.New()

	c, rec := jsonContext(t, e, http.MethodGet, "/api/auth/me", "")
	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["logged_in"])
}

func TestUpdateProfileCreatesWhenMissing(t *testing.T) {
	repo := newFakeUserRepo()
	h := New(repo, ai.NewMock(), "secret")
	e := echo.New()

	c, rec := jsonContext(t, e, http.MethodPut, "/api/auth/profile",
		`{"full_name": "Asha", "soil_type": "Clay", "previous_crops": ["paddy", "onion"]}`)
	c.Set("user_id", uint(5))
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	p, err := repo.ProfileByUserID(5)
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.FullName)
	assert.Equal(t, []string{"paddy", "onion"}, p.PreviousCropList())
}

func TestRecommendDemoFallback(t *testing.T) {
	repo := newFakeUserRepo()
	repo.profiles[5] = &entities.FarmerProfile{UserID: 5, SoilType: "Clay"}
	h := New(repo, ai.NewMock(), "secret")
	e := echo.New()

	c, rec := jsonContext(t, e, http.MethodPost, "/api/auth/recommend", `{}`)
	c.Set("user_id", uint(5))
	require.NoError(t, h.Recommend(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["demo"])
	recommendation, ok := body["recommendation"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, recommendation, "top_crops")
}

func TestRecommendWithoutProfile(t *testing.T) {
	h := New(newFakeUserRepo(), ai.NewMock(), "secret")
	e := echo.New()

	c, rec := jsonContext(t, e, http.MethodPost, "/api/auth/recommend", `{}`)
	c.Set("user_id", uint(99))
	require.NoError(t, h.Recommend(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
