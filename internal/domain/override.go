package domain

import "time"

// Override is an operator- or embedder-supplied backend URL that takes
// precedence over every computed default. It lives in the override store
// until explicitly cleared; the gateway never removes it on its own.
type Override struct {
	// URL is the backend base URL.
	URL string `json:"url"`

	// SetAt is when the override was written.
	SetAt time.Time `json:"set_at"`

	// SetBy optionally records what wrote the override (api, file edit).
	SetBy string `json:"set_by,omitempty"`
}

// IsEmpty reports whether no override is set.
func (o Override) IsEmpty() bool {
	return o.URL == ""
}
