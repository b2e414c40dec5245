package Store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"CareBridge/Models"
)

// Directory resolves staff and clients from their tables.
type Directory struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDirectory(db *gorm.DB, logger *zap.Logger) *Directory {
	return &Directory{db: db, logger: logger}
}

func (d *Directory) LookupStaff(ctx context.Context, id string) (Models.Staff, bool) {
	var s Models.Staff
	return s, d.lookup(ctx, &s, id)
}

func (d *Directory) LookupClient(ctx context.Context, id string) (Models.Client, bool) {
	var c Models.Client
	return c, d.lookup(ctx, &c, id)
}

// lookup reports a database failure as a miss so callers fall back to placeholders.
func (d *Directory) lookup(ctx context.Context, dest any, id string) bool {
	err := d.db.WithContext(ctx).Where("id = ?", id).Take(dest).Error
	if err == nil {
		return true
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		d.logger.Warn("directory lookup failed", zap.String("id", id), zap.Error(err))
	}
	return false
}

// ListClients returns every client ordered by id.
func (d *Directory) ListClients(ctx context.Context) ([]Models.Client, error) {
	var clients []Models.Client
	err := d.db.WithContext(ctx).Order("id").Find(&clients).Error
	return clients, err
}

// ListStaff returns every staff member ordered by id.
func (d *Directory) ListStaff(ctx context.Context) ([]Models.Staff, error) {
	var staff []Models.Staff
	err := d.db.WithContext(ctx).Order("id").Find(&staff).Error
	return staff, err
}
