package sqlite

import (
	"time"

	"github.com/Aleph-Alpha/unidb/v1/unidb"
)

// Config selects the database file and tunes the driver.
type Config struct {
	// Path is the database file. Empty or ":memory:" opens an in-memory database.
	Path string `yaml:"path" envconfig:"SQLITE_PATH"`

	// BusyTimeout is how long a statement waits on a locked database.
	// Defaults to 5 seconds.
	BusyTimeout time.Duration `yaml:"busy_timeout" envconfig:"SQLITE_BUSY_TIMEOUT"`

	// ForeignKeys enables foreign key enforcement.
	ForeignKeys bool `yaml:"foreign_keys" envconfig:"SQLITE_FOREIGN_KEYS"`

	// Pool bounds the async executor. It is ignored by NewSync.
	Pool unidb.PoolConfig `yaml:"pool"`
}

const defaultBusyTimeout = 5 * time.Second

func (c Config) inMemory() bool {
	return c.Path == "" || c.Path == ":memory:"
}
