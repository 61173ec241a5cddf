package common

// AuthHeaderName is the HTTP header / gRPC metadata key that carries the
// bearer token on authenticated requests.
const AuthHeaderName = "authorization"

// BearerScheme is the expected scheme prefix of the auth header value.
const BearerScheme = "Bearer"
