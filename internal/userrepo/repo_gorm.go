package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
)

type userRecord struct {
	Username       string `gorm:"primaryKey;type:varchar(256)"`
	HashedPassword string `gorm:"not null"`
	CreatedAt      time.Time
	Roles          []userRoleRecord `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}

func (userRecord) TableName() string {
	return "users"
}

type userRoleRecord struct {
	Username string `gorm:"primaryKey;type:varchar(256)"`
	Role     string `gorm:"primaryKey;type:varchar(64)"`
}

func (userRoleRecord) TableName() string {
	return "user_roles"
}

func (rec userRecord) toDomain() domain.User {
	roles := make([]string, 0, len(rec.Roles))
	for _, r := range rec.Roles {
		roles = append(roles, r.Role)
	}

	return domain.User{
		Username:       rec.Username,
		HashedPassword: rec.HashedPassword,
		Roles:          roles,
		CreatedAt:      rec.CreatedAt,
	}
}

// RepoGORM facilitates user repository layer logic on top of gorm.
type RepoGORM struct {
	db *gorm.DB
}

// NewRepoGORM returns user RepoGORM.
func NewRepoGORM(db *gorm.DB) *RepoGORM {
	return &RepoGORM{db: db}
}

// AutoMigrate creates or updates the users and user_roles tables.
func (r *RepoGORM) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&userRecord{}, &userRoleRecord{})
}

// Create creates the user with its roles and then returns it.
func (r *RepoGORM) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	rec := userRecord{
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
	}

	for _, role := range arg.Roles {
		rec.Roles = append(rec.Roles, userRoleRecord{Username: arg.Username, Role: role})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&userRecord{}).Where("username = ?", arg.Username).Count(&n).Error; err != nil {
			return err
		}

		if n > 0 {
			return domain.ErrUsernameAlreadyExists
		}

		return tx.Create(&rec).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameAlreadyExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ErrUsernameAlreadyExists
		}

		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrInternal
	}

	return rec.toDomain(), nil
}

// Get returns the user with the given username.
func (r *RepoGORM) Get(ctx context.Context, username string) (domain.User, error) {
	var rec userRecord

	err := r.db.WithContext(ctx).
		Preload("Roles", func(db *gorm.DB) *gorm.DB { return db.Order("role") }).
		Where("username = ?", username).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}

		zerolog.Ctx(ctx).Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrInternal
	}

	return rec.toDomain(), nil
}
