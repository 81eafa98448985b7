package n3rgy

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvironmentAuthorization(t *testing.T) {
	t.Setenv(APIKeyEnv, "AA:BB:CC:DD:EE:FF")

	key, err := EnvironmentAuthorization{}.Authorization(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AA:BB:CC:DD:EE:FF", key)
}

func TestEnvironmentAuthorizationMissing(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	_, err := EnvironmentAuthorization{}.Authorization(context.Background())
	require.ErrorContains(t, err, APIKeyEnv)
}

func TestEnvironmentAuthorizationIsReadPerRequest(t *testing.T) {
	var req *http.Request
	c := NewClient(EnvironmentAuthorization{}, WithTransport(cannedResponse(http.StatusOK, `{"values":[]}`, &req)))

	t.Setenv(APIKeyEnv, "first")
	_, err := c.GetGasConsumption(context.Background(), date(2024, 1, 1), date(2024, 1, 2))
	require.NoError(t, err)
	require.Equal(t, "first", req.Header.Get("Authorization"))

	t.Setenv(APIKeyEnv, "second")
	_, err = c.GetGasConsumption(context.Background(), date(2024, 1, 1), date(2024, 1, 2))
	require.NoError(t, err)
	require.Equal(t, "second", req.Header.Get("Authorization"))

	t.Setenv(APIKeyEnv, "")
	_, err = c.GetGasConsumption(context.Background(), date(2024, 1, 1), date(2024, 1, 2))
	require.ErrorIs(t, err, ErrCredential)
}

func TestStaticAuthorization(t *testing.T) {
	key, err := StaticAuthorization("Bearer abc").Authorization(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", key)
}

func TestAuthorizationFuncReceivesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "token-from-ctx")

	var req *http.Request
	auth := AuthorizationFunc(func(ctx context.Context) (string, error) {
		return ctx.Value(ctxKey{}).(string), nil
	})
	c := NewClient(auth, WithTransport(cannedResponse(http.StatusOK, `{"values":[]}`, &req)))

	_, err := c.GetElectricityTariff(ctx, date(2024, 1, 1), date(2024, 1, 2))
	require.NoError(t, err)
	require.Equal(t, "token-from-ctx", req.Header.Get("Authorization"))
}
