package store

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/packfinderz-promotions/internal/promotions"
	"github.com/angelmondragon/packfinderz-promotions/pkg/db/models"
	pkgerrors "github.com/angelmondragon/packfinderz-promotions/pkg/errors"
	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
)

// Repository reads promotions for the snapshot cache.
type Repository struct {
	db   *gorm.DB
	logg *logger.Logger
	now  func() time.Time
}

// NewRepository builds a promotions repository bound to the provided DB.
func NewRepository(db *gorm.DB, logg *logger.Logger) *Repository {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Repository{db: db, logg: logg, now: time.Now}
}

// ListActive returns the merchant's promotions that have not ended yet.
// Upcoming promotions are included so a cached snapshot stays correct when
// they start. Rows whose config cannot be decoded are skipped.
func (r *Repository) ListActive(ctx context.Context, merchantID string) ([]promotions.Promotion, error) {
	var rows []models.Promotion
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND end_at >= ?", merchantID, r.now().UTC()).
		Order("start_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active promotions")
	}

	out := make([]promotions.Promotion, 0, len(rows))
	for _, row := range rows {
		promo, err := toDomain(row)
		if err != nil {
			fields := pkgerrors.Dump(err).Fields()
			fields["promotion_id"] = row.ID
			fields["merchant_id"] = row.MerchantID
			r.logg.Warn(r.logg.WithFields(ctx, fields), "skipping undecodable promotion row")
			continue
		}
		out = append(out, promo)
	}
	return out, nil
}

// Upsert writes promotions keyed by id. Used to seed local databases.
func (r *Repository) Upsert(ctx context.Context, promos []promotions.Promotion) error {
	if len(promos) == 0 {
		return nil
	}
	rows := make([]models.Promotion, 0, len(promos))
	for _, p := range promos {
		if err := promotions.Validate(p); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "promotion "+p.ID+" is invalid")
		}
		row, err := toModel(p)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "promotion "+p.ID+" is invalid")
		}
		rows = append(rows, row)
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&rows).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert promotions")
	}
	return nil
}
