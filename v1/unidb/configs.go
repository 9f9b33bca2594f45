package unidb

import "time"

// Pool defaults, used for every zero field of PoolConfig.
const (
	DefaultMinConns        = 3
	DefaultMaxConns        = 5
	DefaultAcquireTimeout  = 30 * time.Second
	DefaultConnMaxLifetime = 30 * time.Minute
	DefaultConnMaxIdleTime = 5 * time.Minute
)

// PoolConfig bounds the connection pool of an AsyncExecutor.
type PoolConfig struct {
	// MinConns connections are opened on first use and kept idle.
	MinConns int `yaml:"min_conns" envconfig:"POOL_MIN_CONNS"`

	// MaxConns is the upper bound of simultaneously checked out connections.
	MaxConns int `yaml:"max_conns" envconfig:"POOL_MAX_CONNS"`

	// AcquireTimeout is how long an operation waits for a free connection
	// before failing with ErrPoolExhausted.
	AcquireTimeout time.Duration `yaml:"acquire_timeout" envconfig:"POOL_ACQUIRE_TIMEOUT"`

	// ConnMaxLifetime and ConnMaxIdleTime limit how long a pooled connection is
	// reused. A negative value disables the limit.
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"POOL_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" envconfig:"POOL_CONN_MAX_IDLE_TIME"`
}

// withDefaults fills zero fields and keeps MinConns within MaxConns.
func (c PoolConfig) withDefaults() PoolConfig {
	if c.MaxConns <= 0 {
		c.MaxConns = DefaultMaxConns
	}
	if c.MinConns <= 0 {
		c.MinConns = DefaultMinConns
	}
	if c.MinConns > c.MaxConns {
		c.MinConns = c.MaxConns
	}
	if c.AcquireTimeout <= 0 {
		c.AcquireTimeout = DefaultAcquireTimeout
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if c.ConnMaxIdleTime == 0 {
		c.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}
	return c
}
