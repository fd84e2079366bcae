package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the signed session id in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// Translation kinds.
const (
	KindText  = "text"
	KindVoice = "voice"
)
