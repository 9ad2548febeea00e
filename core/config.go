package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
	}

	SheetsConfig struct {
		SpreadsheetID     string
		CredentialsFile   string
		ClientEmail       string
		PrivateKey        string
		RequestsPerMinute int
		CallTimeout       time.Duration
		InMemory          bool
	}

	Config struct {
		Env          string
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		RollbarToken string
		Server       ServerConfig
		Sheets       SheetsConfig
	}
)

func (sc ServerConfig) Address() string {
	return sc.Host + ":" + sc.Port
}

// NewConfig loads the configuration from the environment.
// ENV selects the variables prefix (DEV by default) and the optional `config/.env.<env>` file.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("app_name", "Investigación")
	v.SetDefault("build", "develop")
	v.SetDefault("server_host", "")
	v.SetDefault("server_port", "8000")
	v.SetDefault("server_debug_host", "localhost:4000")
	v.SetDefault("server_read_timeout", 5*time.Second)
	v.SetDefault("server_write_timeout", 30*time.Second)
	v.SetDefault("server_shutdown_timeout", 10*time.Second)
	v.SetDefault("sheets_requests_per_minute", 60)
	v.SetDefault("sheets_call_timeout", 15*time.Second)
	v.SetDefault("sheets_in_memory", false)
	v.SetDefault("test_mode", false)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("test_mode", true)
		v.SetDefault("sheets_in_memory", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Build:        v.GetString("build"),
		AppName:      v.GetString("app_name"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("test_mode"),
		RollbarToken: v.GetString("rollbar_token"),
		Server: ServerConfig{
			Host:            v.GetString("server_host"),
			Port:            v.GetString("server_port"),
			DebugHost:       v.GetString("server_debug_host"),
			ReadTimeout:     v.GetDuration("server_read_timeout"),
			WriteTimeout:    v.GetDuration("server_write_timeout"),
			ShutdownTimeout: v.GetDuration("server_shutdown_timeout"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:     v.GetString("sheets_spreadsheet_id"),
			CredentialsFile:   v.GetString("sheets_credentials_file"),
			ClientEmail:       v.GetString("sheets_client_email"),
			PrivateKey:        v.GetString("sheets_private_key"),
			RequestsPerMinute: v.GetInt("sheets_requests_per_minute"),
			CallTimeout:       v.GetDuration("sheets_call_timeout"),
			InMemory:          v.GetBool("sheets_in_memory"),
		},
	}

	// fallbacks: variables used by the dashboard's first deployments
	if conf.Sheets.SpreadsheetID == "" {
		conf.Sheets.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if conf.Sheets.ClientEmail == "" {
		conf.Sheets.ClientEmail = os.Getenv("GOOGLE_SHEETS_CLIENT_EMAIL")
	}
	if conf.Sheets.PrivateKey == "" {
		conf.Sheets.PrivateKey = os.Getenv("GOOGLE_SHEETS_PRIVATE_KEY")
	}
	return conf
}
