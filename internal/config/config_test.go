package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDurationUnmarshal(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"15m"`), &d))
	assert.Equal(t, 15*time.Minute, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, d.Duration)

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"forever"`), &d))

	b, err := json.Marshal(Duration{time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"1s"`, string(b))
}

func TestReadConfigDefaults(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	c, err := ReadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default().Game, c.Game)
	assert.True(t, c.Development())
}

func TestReadConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"mode": "production",
		"addr": ":9000",
		"game": {"size": 16, "mine_count": 40},
		"jwt": {"secret": "s3cret", "token_lifetime": "2h"},
		"session_ttl": "30m"
	}`)

	c, err := ReadConfig(path)
	require.NoError(t, err)
	assert.True(t, c.Production())
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, GameConfig{Size: 16, MineCount: 40, MaxSize: 100}, c.Game)
	assert.Equal(t, 2*time.Hour, c.Jwt.TokenLifetime.Duration)
	assert.Equal(t, 30*time.Minute, c.SessionTTL.Duration)
	assert.NotContains(t, c.Fields(), "jwt_secret")
}

func TestReadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"mode": "production", "jwt": {"secret": "from-file"}}`)
	t.Setenv("APP_ADDR", ":7000")
	t.Setenv("JWT_SECRET", "from-env")

	c, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Addr)
	assert.Equal(t, "from-env", c.Jwt.Secret)
}

func TestReadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad game size", `{"game": {"size": 0, "mine_count": 0}}`},
		{"too many mines", `{"game": {"size": 3, "mine_count": 10}}`},
		{"production without secret", `{"mode": "production"}`},
		{"zero ttl", `{"session_ttl": 0}`},
		{"ttl below minimum", `{"session_ttl": 1}`},
		{"size above max_size", `{"game": {"size": 20, "mine_count": 10, "max_size": 16}}`},
		{"size overflows", `{"game": {"size": 4294967296, "mine_count": 0, "max_size": 4294967296}}`},
		{"not json", `{`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadConfig(writeConfig(t, test.body))
			assert.Error(t, err)
		})
	}

	_, err := ReadConfig(writeConfig(t, `{"game": {"size": 3, "mine_count": 10}}`))
	assert.ErrorIs(t, err, mines.ErrInvalidMineCount)

	_, err = ReadConfig(writeConfig(t, `{"game": {"size": 20, "mine_count": 10, "max_size": 16}}`))
	assert.ErrorIs(t, err, mines.ErrInvalidDimension)

	_, err = ReadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestJWTRoundTrip(t *testing.T) {
	j, err := NewJWT(JwtConfig{Secret: "secret", TokenLifetime: Duration{time.Hour}})
	require.NoError(t, err)

	token, err := j.Sign(j.NewSessionClaims(42, time.Now()))
	require.NoError(t, err)

	claims, err := j.ParseSessionClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.GameSessionId)

	other, err := NewJWT(JwtConfig{Secret: "other"})
	require.NoError(t, err)
	_, err = other.ParseSessionClaims(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	j, err := NewJWT(JwtConfig{TokenLifetime: Duration{time.Minute}})
	require.NoError(t, err)

	token, err := j.Sign(j.NewSessionClaims(1, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = j.ParseSessionClaims(token)
	assert.Error(t, err)
}
