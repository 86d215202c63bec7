package config

import (
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	Migrate         bool          `envconfig:"MIGRATE" default:"true"`
}

type Kafka struct {
	Brokers       []string      `envconfig:"BROKERS" default:"localhost:9092"`
	GroupID       string        `envconfig:"GROUP_ID" default:"command-handler"`
	ClientID      string        `envconfig:"CLIENT_ID" default:"command-handler"`
	SASLUsername  string        `envconfig:"SASL_USERNAME"`
	SASLPassword  string        `envconfig:"SASL_PASSWORD"`
	TLSEnabled    bool          `envconfig:"TLS_ENABLED" default:"false"`
	TLSSkipVerify bool          `envconfig:"TLS_SKIP_VERIFY" default:"false"`
	TLSCAFile     string        `envconfig:"TLS_CA_FILE"`
	TLSCertFile   string        `envconfig:"TLS_CERT_FILE"`
	TLSKeyFile    string        `envconfig:"TLS_KEY_FILE"`
	DLQSuffix     string        `envconfig:"DLQ_SUFFIX" default:".dlq"`
	BatchTimeout  time.Duration `envconfig:"BATCH_TIMEOUT" default:"10ms"`
	RetryInitial  time.Duration `envconfig:"RETRY_INITIAL" default:"100ms"`
	RetryMax      time.Duration `envconfig:"RETRY_MAX" default:"10s"`
}

// Topics names the inbound command topics and the outbound record topics.
type Topics struct {
	ConfirmAccountCreation  string `envconfig:"CONFIRM_ACCOUNT_CREATION" default:"confirm_account_creation"`
	ConfirmMoneyTransfer    string `envconfig:"CONFIRM_MONEY_TRANSFER" default:"confirm_money_transfer"`
	AccountCreationFeedback string `envconfig:"ACCOUNT_CREATION_FEEDBACK" default:"account_creation_feedback"`
	MoneyTransferFeedback   string `envconfig:"MONEY_TRANSFER_FEEDBACK" default:"money_transfer_feedback"`
	BalanceChanged          string `envconfig:"BALANCE_CHANGED" default:"balance_changed"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"cmdh:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
	OutcomeTTL   time.Duration `envconfig:"OUTCOME_TTL" default:"24h"`
}

// Lock configures the optional per-account distributed lock. It is only used
// when Enabled is set and Redis is configured.
type Lock struct {
	Enabled    bool          `envconfig:"ENABLED" default:"false"`
	Expiry     time.Duration `envconfig:"EXPIRY" default:"8s"`
	Tries      int           `envconfig:"TRIES" default:"32"`
	RetryDelay time.Duration `envconfig:"RETRY_DELAY" default:"50ms"`
}

type Account struct {
	DefaultLimit int64 `envconfig:"DEFAULT_LIMIT" default:"-50000"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[command-handler]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env     string   `envconfig:"APP_ENV" default:"development"`
	Server  *Server  `envconfig:"SERVER"`
	Log     *Log     `envconfig:"LOG"`
	DB      *DB      `envconfig:"DATABASE"`
	Kafka   *Kafka   `envconfig:"KAFKA"`
	Topics  *Topics  `envconfig:"TOPIC"`
	Redis   *Redis   `envconfig:"REDIS"`
	Lock    *Lock    `envconfig:"LOCK"`
	Account *Account `envconfig:"ACCOUNT"`
}
