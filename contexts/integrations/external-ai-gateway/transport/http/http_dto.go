package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PromptRequest struct {
	Prompt string `json:"prompt"`
}

type WolframResponse struct {
	Result string `json:"result"`
}

type GPTResponse struct {
	Output string `json:"output"`
}
