package types

// APIVersion identifies the wire schema. Bumped only on breaking changes;
// additive fields do not count.
const APIVersion = "1"

// InfoResponse is the response body for GET /api/info. It is computed once
// at startup and constant for the server's lifetime.
type InfoResponse struct {
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
	Hostname   string `json:"hostname"`
	OS         string `json:"os"`
	WorkDir    string `json:"workDir"`
}

// ErrorResponse is the body of any non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}
