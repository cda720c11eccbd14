// Package export writes point-in-time snapshots of the session's
// registries and movement log to an on-disk SQLite document. The store
// is write-only: the engine never reads a snapshot back in.
package export

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "caja/internal/errors"
	"caja/internal/models"
)

// currencyRow mirrors one currency at export time. Decimal values are
// stored as strings to keep them exact.
type currencyRow struct {
	ID              uint `gorm:"primaryKey"`
	Code            int  `gorm:"index"`
	Name            string
	StartingBalance string
	Credits         string
	Debits          string
	CreditCount     int
	DebitCount      int
	Balance         string
	ExportedAt      time.Time
}

type totalizerRow struct {
	ID            uint `gorm:"primaryKey"`
	Code          int  `gorm:"index"`
	Name          string
	Amount        string
	IncreaseCount int
	DecreaseCount int
	ExportedAt    time.Time
}

type movementRow struct {
	ID                uint `gorm:"primaryKey"`
	OperationNumber   int  `gorm:"index"`
	Code              int
	Subcode           int
	PrimaryCurrency   int
	PrimaryAmount     string
	SecondaryCurrency int
	SecondaryAmount   string
	Rate              string
	Date              time.Time
	Status            string
	Reference         string
	Description       string
	Items             []lineItemRow `gorm:"foreignKey:MovementRowID"`
	ExportedAt        time.Time
}

type lineItemRow struct {
	ID            uint `gorm:"primaryKey"`
	MovementRowID uint `gorm:"index"`
	ProductCode   int
	Description   string
	Quantity      string
	UnitPrice     string
}

// Exporter owns one snapshot database.
type Exporter struct {
	db *gorm.DB
}

// NewExporter opens (creating if needed) the snapshot database at path
// and migrates the snapshot tables. Use "file::memory:?cache=shared"
// for an in-memory store in tests.
func NewExporter(path string) (*Exporter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("open snapshot store: %w", err))
	}
	if err := db.AutoMigrate(&currencyRow{}, &totalizerRow{}, &movementRow{}, &lineItemRow{}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("migrate snapshot store: %w", err))
	}
	return &Exporter{db: db}, nil
}

// Snapshot writes the given currencies, totalizers and movements in one
// database transaction, all stamped with the same export time.
func (x *Exporter) Snapshot(currencies []*models.Currency, totalizers []*models.Totalizer, movements []*models.Movement) error {
	now := time.Now()
	err := x.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range currencies {
			row := currencyRow{
				Code:            c.Code,
				Name:            c.Name,
				StartingBalance: c.StartingBalance.String(),
				Credits:         c.Credits.String(),
				Debits:          c.Debits.String(),
				CreditCount:     c.CreditCount,
				DebitCount:      c.DebitCount,
				Balance:         c.Balance().String(),
				ExportedAt:      now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, t := range totalizers {
			row := totalizerRow{
				Code:          t.Code,
				Name:          t.Name,
				Amount:        t.Amount.String(),
				IncreaseCount: t.IncreaseCount,
				DecreaseCount: t.DecreaseCount,
				ExportedAt:    now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, m := range movements {
			row := movementRow{
				OperationNumber:   m.OperationNumber,
				Code:              m.Code,
				Subcode:           m.Subcode,
				PrimaryCurrency:   m.PrimaryCurrency,
				PrimaryAmount:     m.PrimaryAmount.String(),
				SecondaryCurrency: m.SecondaryCurrency,
				SecondaryAmount:   m.SecondaryAmount.String(),
				Rate:              m.Rate.String(),
				Date:              m.Date,
				Status:            string(m.Status),
				Reference:         m.Reference,
				Description:       m.Description,
				ExportedAt:        now,
			}
			for _, li := range m.Items {
				row.Items = append(row.Items, lineItemRow{
					ProductCode: li.ProductCode,
					Description: li.Description,
					Quantity:    li.Quantity.String(),
					UnitPrice:   li.UnitPrice.String(),
				})
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("write snapshot: %w", err))
	}
	return nil
}

// Close releases the underlying database connection.
func (x *Exporter) Close() error {
	sqlDB, err := x.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
