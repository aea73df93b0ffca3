package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zipcart/auth-api/internal/domain"
	"github.com/zipcart/auth-api/internal/service"
	"github.com/zipcart/auth-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	v1 := e.Group("/v1")
	v1.POST("/register", handler.register)
	v1.POST("/login", handler.login)
	v1.POST("/login/google", handler.loginWithGoogle)
	v1.POST("/forgot-password", handler.forgotPassword)
	v1.POST("/reset-password", handler.resetPassword)
	v1.POST("/resend-otp", handler.resendOtp)
	v1.POST("/verify-otp", handler.verifyOtp)
	v1.POST("/change-password", handler.changePassword, RequireAuth(auth))

	e.POST("/logout", handler.logout, RequireAuth(auth))
}

func toAuthUserResponse(result *service.AuthResult) AuthUserResponse {
	return AuthUserResponse{
		ID:    result.User.ID.String(),
		Name:  result.User.Name,
		Email: result.User.Email,
		Token: result.Token,
	}
}

// register handles POST /v1/register
func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if fe := validateRegister(req); !fe.ok() {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fe))
	}

	result, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyUsed) {
			return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fieldErrors{
				"email": {"The email has already been taken."},
			}))
		}
		return c.JSON(http.StatusInternalServerError, util.Fail("Unable to register user"))
	}
	return c.JSON(http.StatusOK, util.Success(toAuthUserResponse(result), "User register successful"))
}

// login handles POST /v1/login
func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if fe := validateLogin(req); !fe.ok() {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fe))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusForbidden, util.Fail("Email or password is incorrect"))
		}
		return c.JSON(http.StatusInternalServerError, util.Fail("Unable to login"))
	}
	return c.JSON(http.StatusOK, util.Success(toAuthUserResponse(result), "Login successful"))
}

// loginWithGoogle handles POST /v1/login/google
func (h *AuthHandler) loginWithGoogle(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if req.IDToken == "" {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fieldErrors{
			"id_token": {"The id token field is required."},
		}))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGoogleToken) {
			return c.JSON(http.StatusUnauthorized, util.Fail("Invalid Google token"))
		}
		return c.JSON(http.StatusInternalServerError, util.Fail("Unable to login"))
	}
	return c.JSON(http.StatusOK, util.Success(toAuthUserResponse(result), "Login successful"))
}

// forgotPassword handles POST /v1/forgot-password
func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if fe := validateForgotPassword(req); !fe.ok() {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fe))
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Fail("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Fail("Unable to send OTP"))
	}
	return c.JSON(http.StatusOK, util.Success(nil, "OTP sent to your email successfully"))
}

// resetPassword handles POST /v1/reset-password
func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if fe := validateResetPassword(req); !fe.ok() {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fe))
	}

	err := h.auth.ResetPassword(c.Request().Context(), req.Email, req.Otp, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Fail("User not found"))
		case errors.Is(err, service.ErrInvalidOtp):
			return c.JSON(http.StatusForbidden, util.Fail("Invalid OTP"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Fail("Unable to reset password"))
		}
	}
	return c.JSON(http.StatusOK, util.Success(nil, "Password reset successfully"))
}

// resendOtp handles POST /v1/resend-otp
func (h *AuthHandler) resendOtp(c echo.Context) error {
	var req ResendOtpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if fe := validateResendOtp(req); !fe.ok() {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fe))
	}

	if err := h.auth.ResendOtp(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Fail("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Fail("Unable to resend OTP"))
	}
	return c.JSON(http.StatusOK, util.Success(nil, "OTP resent successfully"))
}

// verifyOtp handles POST /v1/verify-otp
func (h *AuthHandler) verifyOtp(c echo.Context) error {
	var req VerifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if fe := validateVerifyOtp(req); !fe.ok() {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fe))
	}

	err := h.auth.VerifyOtp(c.Request().Context(), req.Email, req.Otp, domain.OtpPurpose(req.VerifyFor))
	if err != nil {
		if errors.Is(err, service.ErrInvalidOtp) {
			return c.JSON(http.StatusForbidden, util.Fail("Invalid OTP"))
		}
		return c.JSON(http.StatusInternalServerError, util.Fail("Unable to verify OTP"))
	}
	return c.JSON(http.StatusOK, util.Success(nil, "OTP verified successfully"))
}

// changePassword handles POST /v1/change-password (bearer auth)
func (h *AuthHandler) changePassword(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("Unauthenticated"))
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("Invalid request body"))
	}
	if fe := validateChangePassword(req); !fe.ok() {
		return c.JSON(http.StatusUnprocessableEntity, util.ValidationFail(fe))
	}

	err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncorrectOldPassword):
			return c.JSON(http.StatusNotFound, util.Fail("Old password is incorrect"))
		case errors.Is(err, service.ErrUnauthenticated):
			return c.JSON(http.StatusUnauthorized, util.Fail("Unauthenticated"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Fail("Unable to change password"))
		}
	}
	return c.JSON(http.StatusOK, util.Success(nil, "Password changed successfully"))
}

// logout handles POST /logout (bearer auth)
func (h *AuthHandler) logout(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("Unauthenticated"))
	}
	if err := h.auth.Logout(c.Request().Context(), user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, util.Fail("Unable to logout"))
	}
	return c.JSON(http.StatusOK, util.Success(nil, "Logout successful"))
}
