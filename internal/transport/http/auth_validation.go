package http

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/zipcart/auth-api/internal/domain"
)

// Field-level input validation, applied before the services are invoked.
// Rules mirror the public contract: required/email/min:8/confirmed and a
// 4-digit integer OTP. Failures surface as 422 with per-field messages.

const minPasswordLen = 8

type fieldErrors map[string][]string

func (fe fieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe fieldErrors) ok() bool {
	return len(fe) == 0
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > 255 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func requireEmail(fe fieldErrors, email string) {
	if strings.TrimSpace(email) == "" {
		fe.add("email", "The email field is required.")
		return
	}
	if !validEmail(email) {
		fe.add("email", "The email must be a valid email address.")
	}
}

func requirePassword(fe fieldErrors, field, password string) {
	if password == "" {
		fe.add(field, fmt.Sprintf("The %s field is required.", strings.ReplaceAll(field, "_", " ")))
		return
	}
	if len(password) < minPasswordLen {
		fe.add(field, fmt.Sprintf("The %s must be at least %d characters.", strings.ReplaceAll(field, "_", " "), minPasswordLen))
	}
}

func requireOtp(fe fieldErrors, otp int) {
	if otp == 0 {
		fe.add("otp", "The otp field is required.")
		return
	}
	if otp < 1000 || otp > 9999 {
		fe.add("otp", "The otp must be 4 digits.")
	}
}

func validateRegister(req RegisterRequest) fieldErrors {
	fe := fieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		fe.add("name", "The name field is required.")
	} else if len(req.Name) > 255 {
		fe.add("name", "The name may not be greater than 255 characters.")
	}
	requireEmail(fe, req.Email)
	requirePassword(fe, "password", req.Password)
	if req.Password != "" && req.Password != req.PasswordConfirmation {
		fe.add("password", "The password confirmation does not match.")
	}
	return fe
}

func validateLogin(req LoginRequest) fieldErrors {
	fe := fieldErrors{}
	requireEmail(fe, req.Email)
	if req.Password == "" {
		fe.add("password", "The password field is required.")
	}
	return fe
}

func validateForgotPassword(req ForgotPasswordRequest) fieldErrors {
	fe := fieldErrors{}
	requireEmail(fe, req.Email)
	return fe
}

func validateResetPassword(req ResetPasswordRequest) fieldErrors {
	fe := fieldErrors{}
	requireEmail(fe, req.Email)
	requireOtp(fe, req.Otp)
	requirePassword(fe, "password", req.Password)
	if req.Password != "" && req.Password != req.PasswordConfirmation {
		fe.add("password", "The password confirmation does not match.")
	}
	return fe
}

func validateResendOtp(req ResendOtpRequest) fieldErrors {
	fe := fieldErrors{}
	requireEmail(fe, req.Email)
	return fe
}

func validateVerifyOtp(req VerifyOtpRequest) fieldErrors {
	fe := fieldErrors{}
	requireEmail(fe, req.Email)
	requireOtp(fe, req.Otp)
	if strings.TrimSpace(req.VerifyFor) == "" {
		fe.add("verify_for", "The verify for field is required.")
	} else if !domain.OtpPurpose(req.VerifyFor).Valid() {
		fe.add("verify_for", "The selected verify for is invalid.")
	}
	return fe
}

func validateChangePassword(req ChangePasswordRequest) fieldErrors {
	fe := fieldErrors{}
	requirePassword(fe, "old_password", req.OldPassword)
	requirePassword(fe, "new_password", req.NewPassword)
	if req.NewPassword != "" && req.NewPassword == req.OldPassword {
		fe.add("new_password", "The new password must be different from the old password.")
	}
	if req.NewPassword != "" && req.NewPassword != req.ConfirmPassword {
		fe.add("confirm_password", "The confirm password must match the new password.")
	}
	return fe
}
