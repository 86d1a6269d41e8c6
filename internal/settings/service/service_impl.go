package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	settingsdomain "github.com/smallbiznis/storewatch/internal/settings/domain"
	"github.com/smallbiznis/storewatch/pkg/db"
	"github.com/smallbiznis/storewatch/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID         *snowflake.Node
	settingsRepo  repository.Repository[settingsdomain.Setting]
	costRepo      repository.Repository[settingsdomain.ProductCost]
	overridesRepo repository.Repository[settingsdomain.CashOverride]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) settingsdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("settings.service"),

		genID:         p.GenID,
		settingsRepo:  repository.ProvideStore[settingsdomain.Setting](p.DB),
		costRepo:      repository.ProvideStore[settingsdomain.ProductCost](p.DB),
		overridesRepo: repository.ProvideStore[settingsdomain.CashOverride](p.DB),
	}
}

func (s *Service) Get(ctx context.Context, key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, settingsdomain.ErrInvalidKey
	}
	row, err := s.settingsRepo.FindOne(ctx, &settingsdomain.Setting{Key: key})
	if err != nil {
		return "", false, err
	}
	if row == nil {
		return "", false, nil
	}
	return row.Value, true, nil
}

func (s *Service) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return settingsdomain.ErrInvalidKey
	}

	existing, err := s.settingsRepo.FindOne(ctx, &settingsdomain.Setting{Key: key})
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Value = value
		existing.UpdatedAt = time.Now().UTC()
		return s.settingsRepo.Save(ctx, existing)
	}

	err = s.settingsRepo.Create(ctx, &settingsdomain.Setting{
		ID:        s.genID.Generate(),
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	if db.IsDuplicateKeyErr(err) {
		// Concurrent first write; retry as update.
		return s.Set(ctx, key, value)
	}
	return err
}

func (s *Service) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.settingsRepo.Find(ctx, &settingsdomain.Setting{})
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *Service) ProductCosts(ctx context.Context) (map[string]float64, error) {
	rows, err := s.costRepo.Find(ctx, &settingsdomain.ProductCost{})
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.Product] = row.UnitCost
	}
	return out, nil
}

func (s *Service) SetProductCost(ctx context.Context, product string, unitCost float64) error {
	product = strings.TrimSpace(product)
	if product == "" {
		return settingsdomain.ErrInvalidProduct
	}
	if unitCost < 0 {
		return settingsdomain.ErrInvalidCost
	}

	existing, err := s.costRepo.FindOne(ctx, &settingsdomain.ProductCost{Product: product})
	if err != nil {
		return err
	}
	if existing != nil {
		existing.UnitCost = unitCost
		existing.UpdatedAt = time.Now().UTC()
		return s.costRepo.Save(ctx, existing)
	}

	return s.costRepo.Create(ctx, &settingsdomain.ProductCost{
		ID:        s.genID.Generate(),
		Product:   product,
		UnitCost:  unitCost,
		UpdatedAt: time.Now().UTC(),
	})
}

func (s *Service) DeleteProductCost(ctx context.Context, product string) error {
	product = strings.TrimSpace(product)
	if product == "" {
		return settingsdomain.ErrInvalidProduct
	}
	return s.costRepo.Delete(ctx, &settingsdomain.ProductCost{Product: product})
}

func (s *Service) SavedOverrides(ctx context.Context) ([]string, error) {
	rows, err := s.overridesRepo.Find(ctx, &settingsdomain.CashOverride{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.OrderID)
	}
	return out, nil
}

// SaveOverrides replaces the saved override set with the session's current
// one. Replace-not-append keeps an explicit save idempotent.
func (s *Service) SaveOverrides(ctx context.Context, orderIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&settingsdomain.CashOverride{}).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, orderID := range orderIDs {
			orderID = strings.TrimSpace(orderID)
			if orderID == "" {
				continue
			}
			row := settingsdomain.CashOverride{
				ID:        s.genID.Generate(),
				OrderID:   orderID,
				CreatedAt: now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
