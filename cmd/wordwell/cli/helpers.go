package cli

import (
	"github.com/spf13/viper"

	"github.com/wordwell/wordwell/internal/store"
)

// openStore opens the configured storage backend for CLI commands that
// operate on the database directly.
func openStore() (*store.Store, error) {
	return store.Open(
		viper.GetString("database.driver"),
		viper.GetString("database.dsn"),
	)
}
