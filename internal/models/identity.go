package models

type IdentityRequest struct {
	MSISDN string `json:"msisdn" binding:"required"`
}

type IdentityResponse struct {
	IdentityName string `json:"identityname"`
	Message      string `json:"message"`
	Success      bool   `json:"success"`
}
