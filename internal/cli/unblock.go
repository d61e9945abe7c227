package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/srijalk/portfolio-backend/internal/db"
)

// RunUnblockCommand deletes every cooldown row recorded under the given
// identity key or observed address. Operator remedy for senders throttled by
// correlation behind a shared NAT address.
func RunUnblockCommand(dbPath string, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return errors.New("identity key or address is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	repositories := db.NewRepositories(database)
	deleted, err := repositories.Cooldowns.DeleteByIdentityOrIP(trimmed)
	if err != nil {
		return fmt.Errorf("delete cooldown rows: %w", err)
	}

	if deleted == 0 {
		fmt.Printf("no cooldown rows matched %q\n", trimmed)
		return nil
	}

	fmt.Printf("unblocked %q: %d cooldown row(s) removed\n", trimmed, deleted)
	return nil
}
