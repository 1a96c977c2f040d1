package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// InsecureDefaultSecret is the fallback signing secret. Running with it is
// tolerated for local development but always logged loudly.
const InsecureDefaultSecret = "change-me-in-production"

type Config struct {
	Port               string
	JWTSecret          string
	JWTExpiryHours     int
	GoogleClientID     string
	UsersDBPath        string
	TransactionsDBPath string
}

// Load reads .env plus environment overrides into viper and returns the typed
// view of the keys the bootstrap needs. Services read the jwt.*, argon2.* and
// google.* keys through viper directly.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.BindEnv("port", "PORT")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("google.client_id", "GOOGLE_CLIENT_ID")
	viper.BindEnv("db.users_path", "USERS_DB_PATH")
	viper.BindEnv("db.transactions_path", "TRANSACTIONS_DB_PATH")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	viper.SetDefault("port", "8080")
	viper.SetDefault("jwt.secret_key", InsecureDefaultSecret)
	viper.SetDefault("jwt.expiry_hours", 1)
	viper.SetDefault("db.users_path", "db/users.json")
	viper.SetDefault("db.transactions_path", "db/transactions.json")
	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using environment and defaults: %v", err)
	}

	return &Config{
		Port:               viper.GetString("port"),
		JWTSecret:          viper.GetString("jwt.secret_key"),
		JWTExpiryHours:     viper.GetInt("jwt.expiry_hours"),
		GoogleClientID:     viper.GetString("google.client_id"),
		UsersDBPath:        viper.GetString("db.users_path"),
		TransactionsDBPath: viper.GetString("db.transactions_path"),
	}
}

// Validate enforces startup preconditions. An empty signing secret is fatal;
// the insecure default and a missing Google client ID only warn, since both
// are legitimate in deployments that accept the tradeoff.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("jwt.secret_key must not be empty")
	}
	if c.JWTSecret == InsecureDefaultSecret {
		log.Println("WARNING: JWT_SECRET_KEY is not set; using the insecure default secret. Set it before going to production.")
	}
	if c.GoogleClientID == "" {
		log.Println("WARNING: GOOGLE_CLIENT_ID is not set; Google login is disabled for this deployment.")
	}
	return nil
}
