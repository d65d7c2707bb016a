package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "FIREBASE_CREDENTIALS_PATH", "POSTGRES_CONN_STR", "MONGO_URI", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "./firebase_credentials.json", cfg.FirebaseCredentialsPath)
	assert.Empty(t, cfg.PostgresConnStr)
	assert.Empty(t, cfg.MongoURI)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_CONN_STR", "host=db user=app dbname=aurafeed")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "host=db user=app dbname=aurafeed", cfg.PostgresConnStr)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
}

func TestInitDBRequiresConnectionStrings(t *testing.T) {
	_, err := InitDB(&Config{MongoURI: "mongodb://db:27017"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_CONN_STR")

	// Both checks run before any connection is attempted
	_, err = InitDB(&Config{PostgresConnStr: "host=db"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
}
