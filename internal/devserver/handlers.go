package devserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/waitlistadmin/internal/client/models"
	"github.com/dmitrijs2005/waitlistadmin/internal/common"
	"github.com/dmitrijs2005/waitlistadmin/internal/devserver/auth"
)

const verificationCodeLength = 6

// adminView is the admin object as the backend sends it.
type adminView struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	EmailVerifiedAt string `json:"email_verified_at,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	IsActive        bool   `json:"isActive"`
	LastLoginAt     string `json:"lastLoginAt,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func viewOf(a admin) adminView {
	return adminView{
		ID:              a.ID,
		Username:        a.Name,
		Email:           a.Email,
		EmailVerifiedAt: formatTime(a.EmailVerifiedAt),
		CreatedAt:       formatTime(a.CreatedAt),
		UpdatedAt:       formatTime(a.UpdatedAt),
		IsActive:        a.IsActive,
		LastLoginAt:     formatTime(a.LastLoginAt),
	}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, messageResponse{Success: false, Message: msg})
}

// bindValid decodes the body into v and validates it. When it reports false
// the error answer has already been written.
func bindValid(c echo.Context, v any) (bool, error) {
	if err := c.Bind(v); err != nil {
		return false, fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(v); err != nil {
		return false, fail(c, http.StatusUnprocessableEntity, err.Error())
	}
	return true, nil
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success           bool      `json:"success"`
	Message           string    `json:"message"`
	NeedsVerification bool      `json:"needsVerification"`
	Admin             adminView `json:"admin"`
}

func (s *Server) loginAdmin(c echo.Context) error {
	var req loginRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()

	a, err := s.store.Authenticate(req.Email, req.Password)
	if err != nil {
		s.logger.Info(ctx, "login rejected", "email", req.Email)
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}

	code := s.cfg.VerificationCode
	if code == "" {
		code, err = common.MakeRandDigits(verificationCodeLength)
		if err != nil {
			return err
		}
	}
	s.store.IssueCode(a.Email, code, s.cfg.CodeTTL)
	// There is no mail delivery; the code goes to the log.
	s.logger.Info(ctx, "verification code issued", "email", a.Email, "code", code)

	return c.JSON(http.StatusOK, loginResponse{
		Success:           true,
		Message:           "Verification code sent to your email",
		NeedsVerification: true,
		Admin:             viewOf(a),
	})
}

type verifyRequest struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verification_code" validate:"required,numeric,len=6"`
}

type verifyResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Admin   adminView `json:"admin"`
}

func (s *Server) verifyAdmin(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid or expired verification code")
	}

	a, err := s.store.ConsumeCode(req.Email, req.VerificationCode)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid or expired verification code")
	}

	token, err := auth.GenerateToken(a.ID, s.jwtSecret, s.cfg.TokenTTL)
	if err != nil {
		return err
	}
	s.logger.Info(c.Request().Context(), "admin logged in", "admin_id", a.ID)

	return c.JSON(http.StatusOK, verifyResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		Admin:   viewOf(a),
	})
}

func (s *Server) validateToken(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true, "valid": true})
}

type updateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (s *Server) updateProfile(c echo.Context) error {
	var req updateProfileRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	id := c.Get(adminIDKey).(string)
	a, err := s.store.UpdateAdmin(id, models.ProfilePatch{Name: req.Name, Email: req.Email})
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return fail(c, http.StatusConflict, "Email is already in use")
	case err != nil:
		return fail(c, http.StatusNotFound, "Admin not found")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile updated successfully",
		"admin":   viewOf(a),
	})
}

func (s *Server) createAdmin(c echo.Context) error {
	var req models.NewAdmin
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	password, err := common.MakeRandDigits(12)
	if err != nil {
		return err
	}
	a, err := s.store.AddAdmin(req.Name, req.Email, password)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return fail(c, http.StatusConflict, "Admin already exists")
	}
	if err != nil {
		return err
	}
	s.logger.Info(c.Request().Context(), "admin created", "email", a.Email, "password", password)

	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "Admin created successfully",
		"admin":   viewOf(a),
	})
}

func (s *Server) fetchAdmins(c echo.Context) error {
	admins := s.store.Admins()
	out := make([]adminView, 0, len(admins))
	for _, a := range admins {
		out = append(out, viewOf(a))
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": out})
}

func (s *Server) getWaitlist(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Waitlist())
}

func (s *Server) addToWaitlist(c echo.Context) error {
	var req models.NewWaitlistUser
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	w, err := s.store.AddToWaitlist(req)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return fail(c, http.StatusConflict, "Email is already on the waitlist")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, w)
}

func (s *Server) trackingData(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Tracking())
}

func (s *Server) userAnalytics(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Distribution())
}

func (s *Server) fetchUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Users())
}

func (s *Server) fetchUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user id")
	}
	u, err := s.store.User(id)
	if err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) createUser(c echo.Context) error {
	var req models.NewUser
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	u, err := s.store.CreateUser(req)
	if errors.Is(err, common.ErrorAlreadyExists) {
		return fail(c, http.StatusConflict, "Username is already taken")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) updateUserVerification(c echo.Context) error {
	var req models.VerificationUpdate
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := s.store.SetVerification(req.ID, req.VerificationStatus); err != nil {
		return fail(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Verification status updated"})
}
