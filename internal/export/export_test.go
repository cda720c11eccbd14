package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"caja/internal/models"
	"caja/internal/testutil"
)

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	exporter, err := NewExporter(path)
	testutil.AssertNoError(t, err)
	defer exporter.Close()

	peso := models.NewCurrencyWithBalance(1, "Peso", decimal.NewFromInt(10000))
	_, err = peso.Credit(decimal.NewFromInt(500))
	testutil.AssertNoError(t, err)

	sales := models.NewTotalizer(400, "Product sales")
	_, err = sales.Adjust(decimal.NewFromInt(5200))
	testutil.AssertNoError(t, err)

	movement := &models.Movement{
		OperationNumber: 1,
		Code:            400,
		Subcode:         1,
		PrimaryCurrency: 1,
		PrimaryAmount:   decimal.NewFromInt(5200),
		Date:            time.Now(),
		Status:          models.MovementStatusActive,
		Items: []models.LineItem{
			{ProductCode: 20, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5000)},
			{ProductCode: 10, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	err = exporter.Snapshot(
		[]*models.Currency{peso},
		[]*models.Totalizer{sales},
		[]*models.Movement{movement},
	)
	testutil.AssertNoError(t, err)

	var currencies []currencyRow
	if err := exporter.db.Find(&currencies).Error; err != nil {
		t.Fatalf("failed to read currency rows: %v", err)
	}
	if len(currencies) != 1 {
		t.Fatalf("expected 1 currency row, got %d", len(currencies))
	}
	if currencies[0].Balance != "10500" {
		t.Errorf("expected snapshot balance 10500, got %s", currencies[0].Balance)
	}

	var totalizers []totalizerRow
	if err := exporter.db.Find(&totalizers).Error; err != nil {
		t.Fatalf("failed to read totalizer rows: %v", err)
	}
	if len(totalizers) != 1 || totalizers[0].Amount != "5200" {
		t.Errorf("unexpected totalizer rows: %+v", totalizers)
	}

	var movements []movementRow
	if err := exporter.db.Preload("Items").Find(&movements).Error; err != nil {
		t.Fatalf("failed to read movement rows: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("expected 1 movement row, got %d", len(movements))
	}
	if len(movements[0].Items) != 2 {
		t.Errorf("expected 2 line item rows, got %d", len(movements[0].Items))
	}
	if movements[0].Status != "active" {
		t.Errorf("expected status active, got %s", movements[0].Status)
	}
}

func TestSnapshotAppendsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	exporter, err := NewExporter(path)
	testutil.AssertNoError(t, err)
	defer exporter.Close()

	peso := models.NewCurrencyWithBalance(1, "Peso", decimal.NewFromInt(10000))

	for i := 0; i < 2; i++ {
		err = exporter.Snapshot([]*models.Currency{peso}, nil, nil)
		testutil.AssertNoError(t, err)
	}

	var currencies []currencyRow
	if err := exporter.db.Find(&currencies).Error; err != nil {
		t.Fatalf("failed to read currency rows: %v", err)
	}
	if len(currencies) != 2 {
		t.Errorf("expected one row per snapshot run, got %d", len(currencies))
	}
}
