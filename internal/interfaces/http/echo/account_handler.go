package echo

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	app "github.com/pipelinecrm/crm-server/internal/application/account"
	domain "github.com/pipelinecrm/crm-server/internal/domain/account"
)

type AccountHandler struct {
	signup        app.Signup
	login         app.Login
	profile       app.GetProfile
	updateProfile app.UpdateProfile
	updateCompany app.UpdateCompany
	avatar        app.UploadAvatar
	secureCookie  bool
}

type AccountHandlerDeps struct {
	Signup        app.Signup
	Login         app.Login
	GetProfile    app.GetProfile
	UpdateProfile app.UpdateProfile
	UpdateCompany app.UpdateCompany
	UploadAvatar  app.UploadAvatar
	SecureCookie  bool
}

func NewAccountHandler(deps AccountHandlerDeps) *AccountHandler {
	return &AccountHandler{
		signup:        deps.Signup,
		login:         deps.Login,
		profile:       deps.GetProfile,
		updateProfile: deps.UpdateProfile,
		updateCompany: deps.UpdateCompany,
		avatar:        deps.UploadAvatar,
		secureCookie:  deps.SecureCookie,
	}
}

type signupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	CompanyName string `json:"company_name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type updateCompanyRequest struct {
	CompanyName     *string `json:"company_name"`
	SiteURL         *string `json:"site_url"`
	GAMeasurementID *string `json:"ga_measurement_id"`
}

type sessionResponse struct {
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

var accountErrorCases = []errorCase{
	{err: app.ErrMissingSignupData, status: http.StatusBadRequest, code: "missing_signup_data"},
	{err: app.ErrEmailTaken, status: http.StatusConflict, code: "email_taken"},
	{err: app.ErrInvalidCredentials, status: http.StatusUnauthorized, code: "invalid_credentials"},
	{err: app.ErrInvalidUserID, status: http.StatusUnauthorized, code: "unauthorized", message: "login required"},
	{err: app.ErrInvalidCompanyID, status: http.StatusBadRequest, code: "invalid_company_id"},
	{err: app.ErrInvalidUpload, status: http.StatusBadRequest, code: "invalid_upload"},
	{err: app.ErrProfileNotFound, status: http.StatusNotFound, code: "not_found", message: "profile not found"},
	{err: app.ErrCompanyNotFound, status: http.StatusNotFound, code: "not_found", message: "company not found"},
}

// Signup registers the account and opens a session for it.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if _, err := h.signup.Execute(c.Request().Context(), app.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
	}); err != nil {
		return respondUseCaseError(c, err, "failed to sign up", accountErrorCases...)
	}

	return h.startSession(c, req.Email, req.Password, http.StatusCreated)
}

func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	return h.startSession(c, req.Email, req.Password, http.StatusOK)
}

func (h *AccountHandler) startSession(c echo.Context, email, password string, status int) error {
	out, err := h.login.Execute(c.Request().Context(), app.LoginInput{Email: email, Password: password})
	if err != nil {
		return respondUseCaseError(c, err, "failed to log in", accountErrorCases...)
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(status, apiResponse{Data: newSessionResponse(out.Session, out.ExpiresAt)})
}

func (h *AccountHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) Profile(c echo.Context) error {
	out, err := h.profile.Execute(c.Request().Context(), sessionFrom(c).UserID)
	if err != nil {
		return respondUseCaseError(c, err, "failed to load profile", accountErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: newAccountResponse(out)})
}

func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	profile, err := h.updateProfile.Execute(c.Request().Context(), app.UpdateProfileInput{
		UserID:         sessionFrom(c).UserID,
		ProfileChanges: domain.ProfileChanges{FullName: req.FullName, AvatarURL: req.AvatarURL},
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to update profile", accountErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: newProfileResponse(profile)})
}

func (h *AccountHandler) UpdateCompany(c echo.Context) error {
	var req updateCompanyRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	company, err := h.updateCompany.Execute(c.Request().Context(), app.UpdateCompanyInput{
		CompanyID: sessionFrom(c).CompanyID,
		CompanyChanges: domain.CompanyChanges{
			CompanyName:     req.CompanyName,
			SiteURL:         req.SiteURL,
			GAMeasurementID: req.GAMeasurementID,
		},
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to update company", accountErrorCases...)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: newCompanyResponse(company)})
}

func (h *AccountHandler) UploadAvatar(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return badRequest(c, "failed to read uploaded file")
	}
	defer file.Close()

	out, err := h.avatar.Execute(c.Request().Context(), app.UploadAvatarInput{
		UserID:      sessionFrom(c).UserID,
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		return respondUseCaseError(c, err, "failed to upload avatar", accountErrorCases...)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func newSessionResponse(s domain.Session, expiresAt time.Time) sessionResponse {
	return sessionResponse{UserID: s.UserID, CompanyID: s.CompanyID, Email: s.Email, ExpiresAt: expiresAt}
}
