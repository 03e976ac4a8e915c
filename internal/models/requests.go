package models

import "errors"

// ErrEmptyCode is returned when an analysis is requested without any code.
var ErrEmptyCode = errors.New("please enter some code to analyze")

// AnalyzeRequest defines the structure for the API request.
type AnalyzeRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Validate checks the language against the supported set and rejects empty code.
// Whitespace counts as code.
func (r AnalyzeRequest) Validate() (Language, error) {
	lang, err := ParseLanguage(r.Language)
	if err != nil {
		return "", err
	}
	if r.Code == "" {
		return lang, ErrEmptyCode
	}
	return lang, nil
}

// AnalyzeResponse defines the structure for the API response.
type AnalyzeResponse struct {
	Language      Language `json:"language"`
	Code          string   `json:"code"`
	Explanation   string   `json:"explanation"`
	Optimizations string   `json:"optimizations"`
}

// ErrorResponse is the JSON body returned for failed API requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
