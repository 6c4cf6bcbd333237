package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/devserver/auth"
	"github.com/dmitrijs2005/waitlistadmin/internal/devserver/config"
	"github.com/dmitrijs2005/waitlistadmin/internal/logging"
)

const testCode = "123456"

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.VerificationCode = testCode
	c.BcryptCost = bcrypt.MinCost
	return c
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testConfig(), logging.Discard())
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/admin/login-admin", "", map[string]string{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodPost, "/admin/verify-admin", "", map[string]string{"email": "admin@example.com", "verification_code": testCode})
	require.Equal(t, http.StatusOK, rec.Code)
	return decode[verifyResponse](t, rec).Token
}

func TestLoginAndVerify(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/admin/login-admin", "", map[string]string{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decode[messageResponse](t, rec).Message)

	rec = do(t, s, http.MethodPost, "/admin/login-admin", "", map[string]string{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/admin/login-admin", "", map[string]string{"email": "admin@example.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code)
	lr := decode[loginResponse](t, rec)
	assert.True(t, lr.NeedsVerification)
	assert.Equal(t, "admin@example.com", lr.Admin.Email)

	rec = do(t, s, http.MethodPost, "/admin/verify-admin", "", map[string]string{"email": "admin@example.com", "verification_code": "000000"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired verification code", decode[messageResponse](t, rec).Message)

	rec = do(t, s, http.MethodPost, "/admin/verify-admin", "", map[string]string{"email": "admin@example.com", "verification_code": testCode})
	require.Equal(t, http.StatusOK, rec.Code)
	vr := decode[verifyResponse](t, rec)
	require.NotEmpty(t, vr.Token)
	assert.NotEmpty(t, vr.Admin.LastLoginAt)

	id, err := auth.AdminIDFromToken(vr.Token, []byte("secretKey"))
	require.NoError(t, err)
	assert.Equal(t, vr.Admin.ID, id)
}

func TestRequireAdmin(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/validate-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/validate-token", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decode[messageResponse](t, rec).Message)

	expired, err := auth.GenerateToken("whoever", []byte("secretKey"), -time.Minute)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/validate-token", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", decode[messageResponse](t, rec).Message)

	unknown, err := auth.GenerateToken("no-such-admin", []byte("secretKey"), time.Minute)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/validate-token", unknown, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/validate-token", login(t, s), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedEndpoints(t *testing.T) {
	s := newTestServer(t)
	tok := login(t, s)

	rec := do(t, s, http.MethodGet, "/get_waitlist", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.WaitlistUser](t, rec), 3)

	rec = do(t, s, http.MethodGet, "/usage-tracking/get-tracking-data", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[models.TrackingData](t, rec).ToolCallsByDate, 7)

	rec = do(t, s, http.MethodGet, "/user-analytics", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[models.UserDistribution](t, rec).TotalUsers)

	rec = do(t, s, http.MethodPost, "/create-user", tok, models.NewUser{Username: "neo", PhoneNumber: "+1", Pin: "12"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, s, http.MethodPost, "/create-user", tok, models.NewUser{Username: "neo", PhoneNumber: "+1", Pin: "1234"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.User](t, rec)

	rec = do(t, s, http.MethodPost, "/update-user-verification", tok, models.VerificationUpdate{ID: created.ID, VerificationStatus: "verified"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/fetch-user/"+strconv.FormatInt(created.ID, 10), tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.User](t, rec).Verified())

	rec = do(t, s, http.MethodGet, "/fetch-user/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodGet, "/fetch-user/abc", tok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/fetch-users", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.User](t, rec), 4)

	rec = do(t, s, http.MethodPost, "/admin/create-admin", tok, models.NewAdmin{Name: "Bob", Email: "bob@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, s, http.MethodPost, "/admin/create-admin", tok, models.NewAdmin{Name: "Bob", Email: "bob@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/admin/fetch-admins", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	admins := decode[struct {
		Data []models.AdminPayload `json:"data"`
	}](t, rec)
	assert.Len(t, admins.Data, 2)

	rec = do(t, s, http.MethodPost, "/admin/update-profile", tok, map[string]string{"name": "Chief"})
	require.Equal(t, http.StatusOK, rec.Code)
	upd := decode[struct {
		Admin models.AdminPayload `json:"admin"`
	}](t, rec)
	assert.Equal(t, "Chief", upd.Admin.Normalize().Name)

	rec = do(t, s, http.MethodPost, "/admin/update-profile", tok, map[string]string{"email": "bob@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddToWaitlist_Public(t *testing.T) {
	s := newTestServer(t)

	body := models.NewWaitlistUser{EmailAddress: "new@example.com", FirstName: "N", LastName: "P", Country: "Kenya"}
	rec := do(t, s, http.MethodPost, "/add_to_waitlist", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/add_to_waitlist", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/add_to_waitlist", "", models.NewWaitlistUser{EmailAddress: "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decode[messageResponse](t, rec).Message)

	rec = do(t, s, http.MethodPost, "/admin/no-such-action", login(t, s), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
