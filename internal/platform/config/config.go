package config

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Record store selection: pgsql by default, JSON-file local store when
	// USE_LOCAL_STORE is set (the offline deployment mode).
	UseLocalStore bool
	LocalStoreDir string
	DatabaseURL   string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// SMS gateway credentials. Empty credentials are allowed: sends then
	// fail with the "credentials not configured" hint, never fatally.
	SMSAPIURL   string
	SMSUsername string
	SMSPassword string
	SMSSenderID string
	SMSWorkers  int

	// Inter-item pause for the cashbook repair routine.
	RepairDelay time.Duration

	// Fixed staff roster. There is no user management in this system.
	Staff []domain.Staff
}

// rosterEntry mirrors one STAFF_ROSTER element. PasswordHash is bcrypt.
type rosterEntry struct {
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
}

// defaultRoster is the development roster (password "password" for every
// account). Production deployments must set STAFF_ROSTER.
const defaultRoster = `[
	{"username":"owner","displayName":"Branch Owner","passwordHash":"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy","role":"owner"},
	{"username":"officer1","displayName":"Field Officer One","passwordHash":"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy","role":"officer"}
]`

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("USE_LOCAL_STORE", false)
	viper.SetDefault("LOCAL_STORE_DIR", "data")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "gitala-branch")
	viper.SetDefault("SMS_API_URL", "https://www.egosms.co/api/v1/json/")
	viper.SetDefault("SMS_USERNAME", "")
	viper.SetDefault("SMS_PASSWORD", "")
	viper.SetDefault("SMS_SENDER_ID", "GITALA")
	viper.SetDefault("SMS_WORKERS", 4)
	viper.SetDefault("REPAIR_DELAY", "250ms")
	viper.SetDefault("STAFF_ROSTER", defaultRoster)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		UseLocalStore: viper.GetBool("USE_LOCAL_STORE"),
		LocalStoreDir: viper.GetString("LOCAL_STORE_DIR"),
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		JWTIssuer:     viper.GetString("JWT_ISSUER"),
		SMSAPIURL:     viper.GetString("SMS_API_URL"),
		SMSUsername:   viper.GetString("SMS_USERNAME"),
		SMSPassword:   viper.GetString("SMS_PASSWORD"),
		SMSSenderID:   viper.GetString("SMS_SENDER_ID"),
		SMSWorkers:    viper.GetInt("SMS_WORKERS"),
	}

	if !cfg.UseLocalStore && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set and USE_LOCAL_STORE is false.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	repairDelayStr := viper.GetString("REPAIR_DELAY")
	repairDelay, err := time.ParseDuration(repairDelayStr)
	if err != nil {
		repairDelay = 250 * time.Millisecond
		log.Printf("Warning: Invalid value for REPAIR_DELAY ('%s'). Defaulting to %s.\n", repairDelayStr, repairDelay)
	}
	cfg.RepairDelay = repairDelay

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	staff, err := parseRoster(viper.GetString("STAFF_ROSTER"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse STAFF_ROSTER: %w", err)
	}
	cfg.Staff = staff
	if viper.GetString("STAFF_ROSTER") == defaultRoster {
		log.Println("Warning: STAFF_ROSTER not set. Using the default development roster.")
	}

	return cfg, nil
}

func parseRoster(raw string) ([]domain.Staff, error) {
	var entries []rosterEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("staff roster is empty")
	}

	staff := make([]domain.Staff, 0, len(entries))
	for _, e := range entries {
		role := domain.StaffRole(e.Role)
		if role != domain.RoleOwner && role != domain.RoleOfficer {
			return nil, fmt.Errorf("staff %q has unknown role %q", e.Username, e.Role)
		}
		staff = append(staff, domain.Staff{
			Username:     e.Username,
			DisplayName:  e.DisplayName,
			PasswordHash: e.PasswordHash,
			Role:         role,
		})
	}
	return staff, nil
}
