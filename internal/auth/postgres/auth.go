package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/asset-management/internal/auth"
	userDatamodel "github.com/frahmantamala/asset-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

// CreateUser inserts a new identity row. The unique index on email makes a
// duplicate surface as gorm.ErrDuplicatedKey rather than a racy pre-check.
func (r *Repository) CreateUser(email, passwordHash, role string) (int64, error) {
	row := &userDatamodel.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := r.db.Create(row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *Repository) GetByEmail(email string) (*auth.Credentials, error) {
	var row userDatamodel.User
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	return &auth.Credentials{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
	}, nil
}
