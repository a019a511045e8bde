package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := setEnv("CARDROOM_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := setEnv("CARDROOM_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	a := assert.New(t)
	assert.NoError(t, Load())
	cfg := Instance()
	a.Equal(":6000", cfg.Addr)
	a.Equal("postgres", cfg.Storage)
	a.Equal(2500, cfg.StartingChips)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal("debug", cfg.Log.Level)

	// ensure that it's only loaded once
	_ = os.Setenv("CARDROOM_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	clear1 := setEnv("CARDROOM_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, ":5080", cfg.Addr)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, 1000, cfg.StartingChips)
}

func setEnv(key, val string) func() {
	orig := os.Getenv(key)
	_ = os.Setenv(key, val)
	return func() {
		if orig == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
