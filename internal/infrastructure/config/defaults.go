package config

import (
	"fmt"
	"slices"

	"github.com/robfig/cron/v3"
)

var defaults = map[string]any{
	"app.name": "rentflow-backend",
	"app.env":  "development",
	"app.port": "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "rentflow",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret": "",
	"jwt.issuer": "rentflow",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":     "15s",
	"http.write_timeout":    "15s",
	"http.idle_timeout":     "60s",
	"http.shutdown_timeout": "30s",
	"http.max_header_bytes": 1 << 20,
	"http.max_body_size":    1 << 20,
	// no cross-origin requests until origins are configured
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},

	"billing.default_electricity_unit_price": "3000",
	"billing.default_water_unit_price":       "20000",
	"billing.default_payment_due_day":        5,
	"billing.reminder_due_soon_days":         3,
	"billing.history_limit":                  12,

	"scheduler.enabled":     true,
	"scheduler.cron_spec":   "0 0 * * *",
	"scheduler.timezone":    "Asia/Ho_Chi_Minh",
	"scheduler.run_timeout": "30m",
	"scheduler.lock_ttl":    "35m",

	"swagger.enabled": true,

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "",
	"telemetry.insecure":                false,
	"telemetry.db_trace_enabled":        true,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": "200ms",

	"metrics.enabled": true,
	"metrics.path":    "/metrics",
}

func (c *Config) validate() error {
	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		return fmt.Errorf("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			db.MaxIdleConns, db.MaxOpenConns)
	}

	b := c.Billing
	switch {
	case b.DefaultElectricityUnitPrice.IsNegative(), b.DefaultWaterUnitPrice.IsNegative():
		return fmt.Errorf("billing default unit prices cannot be negative")
	case b.DefaultPaymentDueDay < 1 || b.DefaultPaymentDueDay > 31:
		return fmt.Errorf("billing.default_payment_due_day must be between 1 and 31, got %d", b.DefaultPaymentDueDay)
	case b.ReminderDueSoonDays < 0:
		return fmt.Errorf("billing.reminder_due_soon_days cannot be negative")
	case b.HistoryLimit <= 0:
		return fmt.Errorf("billing.history_limit must be positive")
	}

	s := c.Scheduler
	if _, err := cron.ParseStandard(s.CronSpec); err != nil {
		return fmt.Errorf("scheduler.cron_spec %q is invalid: %w", s.CronSpec, err)
	}
	if _, err := s.Location(); err != nil {
		return fmt.Errorf("scheduler.timezone %q is invalid: %w", s.Timezone, err)
	}
	if s.LockTTL < s.RunTimeout {
		return fmt.Errorf("scheduler.lock_ttl (%s) must not be shorter than scheduler.run_timeout (%s)",
			s.LockTTL, s.RunTimeout)
	}

	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", r)
	}

	if c.App.IsProduction() {
		return c.validateProduction()
	}
	return nil
}

func (c *Config) validateProduction() error {
	switch {
	case c.JWT.Secret == "":
		return fmt.Errorf("jwt.secret is required in production")
	case len(c.JWT.Secret) < 32:
		return fmt.Errorf("jwt.secret must be at least 32 characters in production")
	case c.Database.Password == "":
		return fmt.Errorf("database.password is required in production")
	case c.Database.SSLMode == "disable":
		return fmt.Errorf("database.sslmode cannot be 'disable' in production")
	case slices.Contains(c.HTTP.CORSAllowOrigins, "*"):
		return fmt.Errorf("http.cors_allow_origins cannot be '*' in production")
	case c.Telemetry.DBLogFullSQL:
		return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
	}
	return nil
}
