package model

type TranslateRequest struct {
	Query string `json:"query"`
}

type TranslateResponse struct {
	Translation string `json:"translation"`
}
