package db

import (
	"errors"
	"strings"
	"time"

	"github.com/srijalk/portfolio-backend/internal/models"
	"gorm.io/gorm"
)

type CooldownRepository struct {
	database *gorm.DB
}

func NewCooldownRepository(database *gorm.DB) *CooldownRepository {
	return &CooldownRepository{database: database}
}

// Find returns the ledger row for an identity key, or nil when no row exists.
// Absence is a normal outcome, not an error.
func (repo *CooldownRepository) Find(identityKey string) (*models.Cooldown, error) {
	var row models.Cooldown
	if err := repo.database.First(&row, "identity_key = ?", identityKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// FindMostRecentMatch correlates a request to an existing row by last-seen
// transport attributes. When several rows match via different fields, the most
// recently active one wins. Empty attributes never match.
func (repo *CooldownRepository) FindMostRecentMatch(ip string, agent string) (*models.Cooldown, error) {
	ip = strings.TrimSpace(ip)
	agent = strings.TrimSpace(agent)
	if ip == "" && agent == "" {
		return nil, nil
	}

	query := repo.database.Model(&models.Cooldown{})
	switch {
	case ip != "" && agent != "":
		query = query.Where("observed_ip = ? OR observed_agent = ?", ip, agent)
	case ip != "":
		query = query.Where("observed_ip = ?", ip)
	default:
		query = query.Where("observed_agent = ?", agent)
	}

	var row models.Cooldown
	if err := query.Order("last_attempt DESC").First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// RecordAttempt registers an accepted submission as a single atomic statement:
// two concurrent calls for the same key always increment the attempt count
// twice, and last_attempt only ever moves forward.
func (repo *CooldownRepository) RecordAttempt(identityKey string, ip string, agent string, now time.Time) error {
	return repo.database.Exec(`
INSERT INTO cooldowns (identity_key, last_attempt, attempt_count, observed_ip, observed_agent)
VALUES (?, ?, 1, ?, ?)
ON CONFLICT(identity_key) DO UPDATE SET
  last_attempt = excluded.last_attempt,
  attempt_count = attempt_count + 1,
  observed_ip = excluded.observed_ip,
  observed_agent = excluded.observed_agent`,
		identityKey, now, strings.TrimSpace(ip), strings.TrimSpace(agent)).Error
}

func (repo *CooldownRepository) ListOlderThan(cutoff time.Time) ([]models.Cooldown, error) {
	rows := make([]models.Cooldown, 0)
	if err := repo.database.Where("last_attempt < ?", cutoff).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *CooldownRepository) DeleteKeys(identityKeys []string) (int64, error) {
	if len(identityKeys) == 0 {
		return 0, nil
	}
	result := repo.database.Where("identity_key IN ?", identityKeys).Delete(&models.Cooldown{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteByIdentityOrIP removes every row recorded under the given identity key
// or observed address. Operator remedy for senders sharing a NAT address with
// an offender.
func (repo *CooldownRepository) DeleteByIdentityOrIP(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("identity key or address is required")
	}
	result := repo.database.
		Where("identity_key = ? OR observed_ip = ?", value, value).
		Delete(&models.Cooldown{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (repo *CooldownRepository) CountRows() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Cooldown{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
