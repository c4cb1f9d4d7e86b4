package request_models

type OtpRequest struct {
	Phone string `json:"phone" binding:"required,min=8,max=16"`
}

type VerifyOtpRequest struct {
	Phone       string `json:"phone" binding:"required,min=8,max=16"`
	Otp         string `json:"otp" binding:"required,len=6,numeric"`
	DeviceToken string `json:"device_token"`
}

// RegisterRequest is bound from a multipart form; the KYC images arrive as
// separate file parts.
type RegisterRequest struct {
	Phone        string `form:"phone" binding:"required"`
	FirstName    string `form:"first_name"`
	MiddleName   string `form:"middle_name"`
	LastName     string `form:"last_name"`
	Email        string `form:"email" binding:"omitempty,email"`
	DOB          string `form:"dob"`
	Gender       string `form:"gender"`
	Address      string `form:"address"`
	AadharNumber string `form:"aadhar_number"`
	PanNumber    string `form:"pan_number"`
}

type UpdateProfileRequest struct {
	FirstName    *string `form:"first_name"`
	MiddleName   *string `form:"middle_name"`
	LastName     *string `form:"last_name"`
	Email        *string `form:"email" binding:"omitempty,email"`
	DOB          *string `form:"dob"`
	Gender       *string `form:"gender"`
	Address      *string `form:"address"`
	AadharNumber *string `form:"aadhar_number"`
	PanNumber    *string `form:"pan_number"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type VerificationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}
