package n3rgy

import (
	"context"
	"fmt"
	"os"
)

// APIKeyEnv is read by EnvironmentAuthorization. n3rgy consumer keys are the
// MAC address of the In Home Display (IHD).
const APIKeyEnv = "N3RGY__APIKEY"

// AuthorizationProvider supplies the Authorization header value for each
// request. Implementations must be safe for concurrent use.
type AuthorizationProvider interface {
	Authorization(ctx context.Context) (string, error)
}

// AuthorizationFunc adapts a function to AuthorizationProvider.
type AuthorizationFunc func(ctx context.Context) (string, error)

func (f AuthorizationFunc) Authorization(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticAuthorization always returns the same key.
type StaticAuthorization string

func (s StaticAuthorization) Authorization(context.Context) (string, error) {
	return string(s), nil
}

// EnvironmentAuthorization reads the key from N3RGY__APIKEY on every call.
type EnvironmentAuthorization struct{}

func (EnvironmentAuthorization) Authorization(context.Context) (string, error) {
	key, ok := os.LookupEnv(APIKeyEnv)
	if !ok || key == "" {
		return "", fmt.Errorf("missing required API key: set the environment variable %s to your In Home Display (IHD) MAC address", APIKeyEnv)
	}
	return key, nil
}
