package mariadb

import "time"

// Config holds the connection settings of a MariaDB or MySQL database.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

type Connection struct {
	Host     string `yaml:"host" envconfig:"MARIADB_HOST"`
	Port     string `yaml:"port" envconfig:"MARIADB_PORT"`
	User     string `yaml:"user" envconfig:"MARIADB_USER"`
	Password string `yaml:"password" envconfig:"MARIADB_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"MARIADB_DB"`

	// Charset defaults to utf8mb4.
	Charset string `yaml:"charset" envconfig:"MARIADB_CHARSET"`

	ParseTime bool `yaml:"parse_time" envconfig:"MARIADB_PARSE_TIME"`

	// Loc defaults to Local.
	Loc string `yaml:"loc" envconfig:"MARIADB_LOC"`

	TLS          string `yaml:"tls" envconfig:"MARIADB_TLS"`
	Timeout      string `yaml:"timeout" envconfig:"MARIADB_TIMEOUT"`
	ReadTimeout  string `yaml:"read_timeout" envconfig:"MARIADB_READ_TIMEOUT"`
	WriteTimeout string `yaml:"write_timeout" envconfig:"MARIADB_WRITE_TIMEOUT"`
}

// ConnectionDetails bounds the async executor's pool. Zero values fall back
// to the unidb pool defaults.
type ConnectionDetails struct {
	MinConns        int           `yaml:"min_conns" envconfig:"MARIADB_MIN_CONNS"`
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"MARIADB_MAX_OPEN_CONNS"`
	AcquireTimeout  time.Duration `yaml:"acquire_timeout" envconfig:"MARIADB_ACQUIRE_TIMEOUT"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"MARIADB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" envconfig:"MARIADB_CONN_MAX_IDLE_TIME"`
}
