package authenticator

import (
	"testing"
	"time"

	"github.com/athlonhq/backend/config"
	"github.com/stretchr/testify/require"
)

func TestTokenEngine(t *testing.T) {
	type payload struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	engine := NewTokenEngine[payload](config.AuthConfigs{
		TokenSecret: "secret",
		AccessToken: config.TokenConfigs{Expiration: time.Minute},
	})

	token, err := engine.Generate("user1", payload{ID: "user1", Name: "foo"})
	require.NoError(t, err)

	got, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, payload{ID: "user1", Name: "foo"}, got)

	_, err = engine.Verify(token + "tampered")
	require.Error(t, err)
}
