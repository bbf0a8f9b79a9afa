package dto

// TokenRequest is the JSON body accepted by POST /token.
//
// The username is an opaque identity claim: it is signed as-is, with no
// presence or format validation and no proof of identity. Anyone can mint
// a credential for any name; the gap is deliberate and documented.
type TokenRequest struct {
	Username string `json:"username" example:"alice"`
}

// TokenResponse is the JSON structure returned by POST /token.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiJ9..."`
}
