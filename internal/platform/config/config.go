package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	IsProduction  bool
	EnableDBCheck bool

	// Atomic unit bounds
	LockTimeout time.Duration
	ExecTimeout time.Duration

	// Billing defaults
	DefaultCurrency string
	SystemUserID    string

	// Background jobs (asynq)
	RedisAddr           string
	WorkerConcurrency   int
	BillingOrgID        string // org the cron schedules bill; empty disables cron
	InvoiceGenCron      string
	CostMaterializeCron string
	OverdueScanCron     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOCK_TIMEOUT", "5s")
	viper.SetDefault("EXEC_TIMEOUT", "10s")
	viper.SetDefault("DEFAULT_CURRENCY", "BRL")
	viper.SetDefault("SYSTEM_USER_ID", "system")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("BILLING_ORG_ID", "")
	// first day of the month, early morning
	viper.SetDefault("INVOICE_GEN_CRON", "0 6 1 * *")
	viper.SetDefault("COST_MATERIALIZE_CRON", "30 6 1 * *")
	// daily overdue sweep
	viper.SetDefault("OVERDUE_SCAN_CRON", "0 7 * * *")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	lockTimeoutStr := viper.GetString("LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil {
		lockTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockTimeoutStr, lockTimeout)
	}
	cfg.LockTimeout = lockTimeout

	execTimeoutStr := viper.GetString("EXEC_TIMEOUT")
	execTimeout, err := time.ParseDuration(execTimeoutStr)
	if err != nil {
		execTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for EXEC_TIMEOUT ('%s'). Defaulting to %s.\n", execTimeoutStr, execTimeout)
	}
	cfg.ExecTimeout = execTimeout

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	cfg.SystemUserID = viper.GetString("SYSTEM_USER_ID")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.WorkerConcurrency = viper.GetInt("WORKER_CONCURRENCY")
	cfg.BillingOrgID = viper.GetString("BILLING_ORG_ID")
	if cfg.BillingOrgID == "" {
		log.Println("Warning: BILLING_ORG_ID not set. Cron schedules are disabled; tasks can still be enqueued explicitly.")
	}
	cfg.InvoiceGenCron = viper.GetString("INVOICE_GEN_CRON")
	cfg.CostMaterializeCron = viper.GetString("COST_MATERIALIZE_CRON")
	cfg.OverdueScanCron = viper.GetString("OVERDUE_SCAN_CRON")

	return cfg, nil
}
