package cardrepo

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
)

type cashCardRecord struct {
	ID     int64           `gorm:"primaryKey;autoIncrement"`
	Amount decimal.Decimal `gorm:"type:numeric;not null"`
	Owner  string          `gorm:"type:varchar(256);not null;index"`
}

func (cashCardRecord) TableName() string {
	return "cash_cards"
}

func (rec cashCardRecord) toDomain() domain.CashCard {
	return domain.CashCard{ID: rec.ID, Amount: rec.Amount, Owner: rec.Owner}
}

// RepoGORM facilitates cash card repository layer logic on top of gorm.
type RepoGORM struct {
	db *gorm.DB
}

// NewRepoGORM returns cash card RepoGORM.
func NewRepoGORM(db *gorm.DB) *RepoGORM {
	return &RepoGORM{db: db}
}

// AutoMigrate creates or updates the cash_cards table.
func (r *RepoGORM) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&cashCardRecord{})
}

// Create stores a new cash card and returns it with the assigned id.
func (r *RepoGORM) Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	rec := cashCardRecord{Amount: amount, Owner: owner}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return domain.CashCard{}, errorspkg.ErrInternal
	}

	return rec.toDomain(), nil
}

// Get returns the cash card with the given id.
func (r *RepoGORM) Get(ctx context.Context, id int64) (domain.CashCard, error) {
	var rec cashCardRecord

	err := r.db.WithContext(ctx).First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CashCard{}, domain.ErrCashCardNotFound
		}

		zerolog.Ctx(ctx).Error().Err(err).Send()

		return domain.CashCard{}, errorspkg.ErrInternal
	}

	return rec.toDomain(), nil
}

// List returns one page of the cash cards of owner.
func (r *RepoGORM) List(ctx context.Context, owner string, page domain.PageRequest) ([]domain.CashCard, error) {
	order, err := orderBy(page.Sort)
	if err != nil {
		return nil, err
	}

	var recs []cashCardRecord

	err = r.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order(order).
		Limit(int(page.Size)).
		Offset(int(page.Offset())).
		Find(&recs).Error
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items := make([]domain.CashCard, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.toDomain())
	}

	return items, nil
}

// Update replaces the amount of the cash card id owned by owner.
func (r *RepoGORM) Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	res := r.db.WithContext(ctx).
		Model(&cashCardRecord{}).
		Where("id = ? AND owner = ?", id, owner).
		Updates(map[string]any{"amount": amount, "owner": owner})
	if res.Error != nil {
		zerolog.Ctx(ctx).Error().Err(res.Error).Send()
		return domain.CashCard{}, errorspkg.ErrInternal
	}

	if res.RowsAffected == 0 {
		return domain.CashCard{}, domain.ErrCashCardNotFound
	}

	return domain.CashCard{ID: id, Amount: amount, Owner: owner}, nil
}

// Delete removes the cash card id owned by owner.
func (r *RepoGORM) Delete(ctx context.Context, id int64, owner string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner = ?", id, owner).
		Delete(&cashCardRecord{})
	if res.Error != nil {
		zerolog.Ctx(ctx).Error().Err(res.Error).Send()
		return errorspkg.ErrInternal
	}

	if res.RowsAffected == 0 {
		return domain.ErrCashCardNotFound
	}

	return nil
}
