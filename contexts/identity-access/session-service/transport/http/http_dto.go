package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type WhoAmIResponse struct {
	IdentityID  string `json:"identity_id"`
	DisplayName string `json:"display_name"`
	Active      bool   `json:"active"`
}

type LogoutResponse struct {
	LogoutURL string `json:"logout_url"`
}
