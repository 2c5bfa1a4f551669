package repository

import "github.com/dfmartinez/bodega-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	UpdatePassword(id, passwordHash string) error
	Count() (int, error)
}
