package translation

// TranslateRequest translates text between two languages.
type TranslateRequest struct {
	Text       string `json:"text" binding:"required,max=50000"`
	SourceLang string `json:"sourceLang" binding:"required,max=16"`
	TargetLang string `json:"targetLang" binding:"required,max=16"`
}

// DetectRequest guesses the language of a text sample.
type DetectRequest struct {
	Text string `json:"text" binding:"required,max=50000"`
}
