// Package config loads application configuration.
//
// PRECEDENCE (lowest to highest): baked-in defaults → .env file (if one
// exists next to the binary) → real environment variables. godotenv
// loads the .env file into the process environment, then viper reads
// everything through AutomaticEnv, so `ASSISTOR_PORT=9000 ./server`
// always wins over whatever the .env file says.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server needs to start. It is assembled
// once in main and passed down — no package reads the environment on
// its own.
type Config struct {
	Port         int
	DatabasePath string
	UploadDir    string

	JWTSecret string
	TokenTTL  time.Duration

	// BcryptCost is tunable so tests can use the bcrypt minimum (4)
	// instead of paying ~250ms per hash.
	BcryptCost int

	Debug bool
}

// Load reads configuration from defaults, an optional .env file, and
// the environment. Env vars are prefixed: ASSISTOR_PORT, ASSISTOR_JWT_SECRET,
// ASSISTOR_DATABASE_PATH, and so on.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("database_path", "data/assistor.db")
	v.SetDefault("upload_dir", "data/uploads")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("debug", false)

	// .env is optional — local development convenience only.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("assistor")
	v.AutomaticEnv()

	return Config{
		Port:         v.GetInt("port"),
		DatabasePath: v.GetString("database_path"),
		UploadDir:    v.GetString("upload_dir"),
		JWTSecret:    v.GetString("jwt_secret"),
		TokenTTL:     v.GetDuration("token_ttl"),
		BcryptCost:   v.GetInt("bcrypt_cost"),
		Debug:        v.GetBool("debug"),
	}, nil
}
