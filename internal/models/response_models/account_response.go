package response_models

import "seraphina/internal/models/db_models"

type OtpResponse struct {
	Phone string `json:"phone"`
	// Code is only populated when OTP_EXPOSE_CODE is enabled.
	Code string `json:"code,omitempty"`
}

type VerifyOtpResponse struct {
	UserExist bool            `json:"user_exist"`
	Token     string          `json:"token,omitempty"`
	User      *db_models.User `json:"user,omitempty"`
}

type RegistrationResponse struct {
	Token            string          `json:"token,omitempty"`
	AwaitingApproval bool            `json:"awaiting_approval"`
	User             *db_models.User `json:"user"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
