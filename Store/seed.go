package Store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"CareBridge/Models"
)

// Seed loads the demo staff, clients and roster for day. It only runs against
// an empty task table, so restarting the service keeps existing data.
func (s *GormStore) Seed(ctx context.Context, day string, logger *zap.Logger) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&taskRow{}).Count(&n).Error; err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if n > 0 {
		logger.Info("database already seeded", zap.Int64("tasks", n))
		return nil
	}

	staff := append([]Models.Staff(nil), Models.MockStaff...)
	clients := append([]Models.Client(nil), Models.MockClients...)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&staff).Error; err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&clients).Error; err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	tasks := Models.MockTasks(day)
	if err := s.CreateTasks(ctx, tasks); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	logger.Info("seeded mock data",
		zap.Int("staff", len(staff)),
		zap.Int("clients", len(clients)),
		zap.Int("tasks", len(tasks)),
		zap.String("date", day))
	return nil
}
