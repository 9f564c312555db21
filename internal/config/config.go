package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration required by the relay process.
// Values come from env, optionally seeded from a .env file in the working directory.
// No business logic should depend on raw environment variables.
type Config struct {
	App       AppConfig
	LeadStore LeadStoreConfig
	Supabase  SupabaseConfig
	DB        DBConfig
	Exotel    ExotelConfig
	TTS       TTSConfig
	Redis     RedisConfig
}

type AppConfig struct {
	Env  string
	Port int

	// PublicBaseURL is where the telephony provider reaches this service.
	// Callback URLs for the script and status webhooks are built from it.
	PublicBaseURL string
}

// LeadStoreKind selects the lead store backend.
type LeadStoreKind string

const (
	LeadStoreSupabase LeadStoreKind = "supabase"
	LeadStorePostgres LeadStoreKind = "postgres"
	LeadStoreMemory   LeadStoreKind = "memory"
)

type LeadStoreConfig struct {
	Kind  LeadStoreKind
	Table string

	// SeedFile is a JSON array of leads loaded into the memory store at startup.
	SeedFile string
}

type SupabaseConfig struct {
	URL        string
	ServiceKey string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

type ExotelConfig struct {
	SID      string
	Token    string
	CallerID string
	APIHost  string
	CallType string
}

type TTSConfig struct {
	APIKey   string
	BaseURL  string
	Voice    string
	CacheTTL time.Duration
}

type RedisConfig struct {
	Host string
	Port int
}

const (
	defaultPort          = 8000
	defaultPublicBaseURL = "http://127.0.0.1:8000"
	defaultLeadsTable    = "leads"
	defaultExotelHost    = "api.exotel.com"
	defaultCallType      = "transfers"
	defaultVoice         = "hindi_female_v1"
	defaultTTSCacheTTL   = 24 * time.Hour
	defaultRedisPort     = 6379
)

func Load() (Config, error) {
	// Missing .env is fine; already-set variables win.
	_ = godotenv.Load()

	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := optionalInt("APP_PORT", defaultPort)
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}
	c.App.PublicBaseURL = getEnv("LIVE_API_URL", defaultPublicBaseURL)

	c.LeadStore.Kind = LeadStoreKind(strings.ToLower(getEnv("LEAD_STORE", string(LeadStoreSupabase))))
	c.LeadStore.Table = getEnv("LEADS_TABLE", defaultLeadsTable)
	c.LeadStore.SeedFile = strings.TrimSpace(os.Getenv("LEADS_SEED_FILE"))

	c.Supabase.URL = strings.TrimSpace(os.Getenv("SUPABASE_URL"))
	c.Supabase.ServiceKey = strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_KEY"))

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	{
		n, err := optionalInt("DB_PORT", 5432)
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.DB.Port = n
	}
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	c.Exotel.SID = strings.TrimSpace(os.Getenv("EXOTEL_SID"))
	c.Exotel.Token = os.Getenv("EXOTEL_TOKEN")
	c.Exotel.CallerID = strings.TrimSpace(os.Getenv("EXOTEL_CALLER_ID"))
	c.Exotel.APIHost = getEnv("EXOTEL_API_HOST", defaultExotelHost)
	c.Exotel.CallType = getEnv("EXOTEL_CALL_TYPE", defaultCallType)

	c.TTS.APIKey = strings.TrimSpace(os.Getenv("NARI_LABS_API_KEY"))
	c.TTS.BaseURL = strings.TrimSpace(os.Getenv("NARI_LABS_BASE_URL"))
	c.TTS.Voice = getEnv("NARI_LABS_VOICE", defaultVoice)
	{
		d, err := optionalDuration("TTS_CACHE_TTL", defaultTTSCacheTTL)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		c.TTS.CacheTTL = d
	}

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	{
		n, err := optionalInt("REDIS_PORT", defaultRedisPort)
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every configuration problem at once.
// It also fills defaults that depend on other fields (DB_SSLMODE outside production).
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}
	if !isAbsoluteHTTPURL(c.App.PublicBaseURL) {
		errs = append(errs, fmt.Errorf("LIVE_API_URL must be an absolute http(s) URL, got %q", c.App.PublicBaseURL))
	}

	switch c.LeadStore.Kind {
	case LeadStoreSupabase:
		if c.Supabase.URL == "" {
			errs = append(errs, errors.New("SUPABASE_URL is required when LEAD_STORE=supabase"))
		} else if !isAbsoluteHTTPURL(c.Supabase.URL) {
			errs = append(errs, fmt.Errorf("SUPABASE_URL must be an absolute http(s) URL, got %q", c.Supabase.URL))
		}
		if c.Supabase.ServiceKey == "" {
			errs = append(errs, errors.New("SUPABASE_SERVICE_KEY is required when LEAD_STORE=supabase"))
		}
	case LeadStorePostgres:
		errs = append(errs, c.validateDB()...)
	case LeadStoreMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("LEAD_STORE=memory is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("LEAD_STORE must be one of supabase, postgres, memory, got %q", c.LeadStore.Kind))
	}
	if c.LeadStore.SeedFile != "" && c.LeadStore.Kind != LeadStoreMemory {
		errs = append(errs, errors.New("LEADS_SEED_FILE is only supported with LEAD_STORE=memory"))
	}
	if c.LeadStore.Table == "" {
		errs = append(errs, errors.New("LEADS_TABLE must not be empty"))
	}

	if c.Exotel.SID == "" {
		errs = append(errs, errors.New("EXOTEL_SID is required"))
	}
	if c.Exotel.Token == "" {
		errs = append(errs, errors.New("EXOTEL_TOKEN is required"))
	}
	if c.Exotel.CallerID == "" {
		errs = append(errs, errors.New("EXOTEL_CALLER_ID is required"))
	}

	if c.TTS.BaseURL != "" && !isAbsoluteHTTPURL(c.TTS.BaseURL) {
		errs = append(errs, fmt.Errorf("NARI_LABS_BASE_URL must be an absolute http(s) URL, got %q", c.TTS.BaseURL))
	}

	if c.Redis.Host != "" {
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
		if c.TTS.CacheTTL <= 0 {
			errs = append(errs, errors.New("TTS_CACHE_TTL must be positive when REDIS_HOST is set"))
		}
	}

	return joinErrors(errs)
}

func (c *Config) validateDB() []error {
	var errs []error
	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required when LEAD_STORE=postgres"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required when LEAD_STORE=postgres"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required when LEAD_STORE=postgres"))
	}
	if c.DB.SSLMode == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}
	return errs
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

// TTSEnabled reports whether the TTS provider is configured at all.
func (c Config) TTSEnabled() bool {
	return c.TTS.APIKey != "" && c.TTS.BaseURL != ""
}

// CacheEnabled reports whether synthesized audio URLs are cached in Redis.
func (c Config) CacheEnabled() bool {
	return c.Redis.Host != ""
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func optionalInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	return d, nil
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
