package models

// SuggestRequest is the POST /suggest payload.
// website is a honeypot field; humans never see it, bots fill it.
// elapsed_ms is the time since the form was rendered; omitted by clients
// that cannot measure it, in which case the timing check is skipped. A
// pointer keeps an explicit 0 distinct from an absent field.
type SuggestRequest struct {
	URL       string `json:"url"`
	Website   string `json:"website,omitempty"`
	ElapsedMS *int64 `json:"elapsed_ms,omitempty"`
}

// SuggestResponse is returned by POST /suggest.
// It is identical whether the suggestion was written or silently dropped,
// so automated clients cannot tell which heuristic caught them.
type SuggestResponse struct {
	Success bool `json:"success"`
}
