package postgres

import "time"

// Config holds the connection settings of a PostgreSQL database.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`

	// KeyColumn is returned by inserts as the new row's identifier. Defaults to "id".
	KeyColumn string `yaml:"key_column" envconfig:"POSTGRES_KEY_COLUMN"`
}

type Connection struct {
	Host     string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"POSTGRES_SSLMODE"`
}

// ConnectionDetails bounds the async executor's pool. Zero values fall back
// to the unidb pool defaults.
type ConnectionDetails struct {
	MinConns        int           `yaml:"min_conns" envconfig:"POSTGRES_MIN_CONNS"`
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"POSTGRES_MAX_OPEN_CONNS"`
	AcquireTimeout  time.Duration `yaml:"acquire_timeout" envconfig:"POSTGRES_ACQUIRE_TIMEOUT"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" envconfig:"POSTGRES_CONN_MAX_IDLE_TIME"`
}
