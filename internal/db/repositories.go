package db

import "gorm.io/gorm"

type Repositories struct {
	Cooldowns *CooldownRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Cooldowns: NewCooldownRepository(database),
	}
}
