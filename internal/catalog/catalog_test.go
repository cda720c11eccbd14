package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"caja/internal/catalog"
	"caja/internal/testutil"
)

const sampleCatalog = `<catalog>
  <totalizers>
    <totalizer code="100" description="Foreign currency purchased"/>
    <totalizer code="300" description="Treasury volume"/>
  </totalizers>
  <transactions>
    <transaction code="100" subcode="1" description="Buy foreign currency" kind="currency-buy">
      <currencies primary="2" secondary="1"/>
      <effects>
        <effect totalizer="100" sign="+" leg="1"/>
      </effects>
    </transaction>
    <transaction code="300" subcode="2" description="Send to treasury" kind="treasury-transfer">
      <currencies primary="1" secondary="1"/>
      <effects>
        <effect totalizer="300" sign="+" leg="1"/>
      </effects>
    </transaction>
  </transactions>
</catalog>`

func TestParse(t *testing.T) {
	t.Run("valid_document", func(t *testing.T) {
		cat, err := catalog.Parse([]byte(sampleCatalog))
		testutil.AssertNoError(t, err)

		if len(cat.Totalizers()) != 2 {
			t.Errorf("expected 2 totalizer definitions, got %d", len(cat.Totalizers()))
		}
		if len(cat.Types()) != 2 {
			t.Errorf("expected 2 transaction types, got %d", len(cat.Types()))
		}

		tt, err := cat.FindTypeDefinition(100, 1)
		testutil.AssertNoError(t, err)
		if tt.Kind != catalog.KindCurrencyBuy {
			t.Errorf("expected currency-buy kind, got %s", tt.Kind)
		}
		if tt.Currencies != [2]int{2, 1} {
			t.Errorf("expected currency pair [2 1], got %v", tt.Currencies)
		}
		if len(tt.Effects) != 1 || tt.Effects[0].TotalizerCode != 100 {
			t.Errorf("unexpected effects: %v", tt.Effects)
		}
	})

	t.Run("unknown_kind_rejected", func(t *testing.T) {
		doc := `<catalog><transactions>
			<transaction code="1" subcode="1" description="x" kind="lottery">
				<currencies primary="1" secondary="1"/>
			</transaction>
		</transactions></catalog>`
		_, err := catalog.Parse([]byte(doc))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_sign_rejected", func(t *testing.T) {
		doc := `<catalog><transactions>
			<transaction code="1" subcode="1" description="x" kind="product-sale">
				<currencies primary="1" secondary="1"/>
				<effects><effect totalizer="100" sign="*" leg="1"/></effects>
			</transaction>
		</transactions></catalog>`
		_, err := catalog.Parse([]byte(doc))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_leg_rejected", func(t *testing.T) {
		doc := `<catalog><transactions>
			<transaction code="1" subcode="1" description="x" kind="product-sale">
				<currencies primary="1" secondary="1"/>
				<effects><effect totalizer="100" sign="+" leg="3"/></effects>
			</transaction>
		</transactions></catalog>`
		_, err := catalog.Parse([]byte(doc))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("malformed_xml_rejected", func(t *testing.T) {
		_, err := catalog.Parse([]byte("<catalog><totalizers>"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_transaction_type_rejected", func(t *testing.T) {
		doc := `<catalog><transactions>
			<transaction code="1" subcode="1" description="x" kind="product-sale">
				<currencies primary="1" secondary="1"/>
			</transaction>
			<transaction code="1" subcode="1" description="y" kind="product-sale">
				<currencies primary="1" secondary="1"/>
			</transaction>
		</transactions></catalog>`
		_, err := catalog.Parse([]byte(doc))
		testutil.AssertAppError(t, err, "DUPLICATE_CODE")
	})

	t.Run("duplicate_totalizer_rejected", func(t *testing.T) {
		doc := `<catalog><totalizers>
			<totalizer code="100" description="x"/>
			<totalizer code="100" description="y"/>
		</totalizers></catalog>`
		_, err := catalog.Parse([]byte(doc))
		testutil.AssertAppError(t, err, "DUPLICATE_CODE")
	})
}

func TestNewCopiesTotalizers(t *testing.T) {
	defs := []catalog.TotalizerDefinition{{Code: 100, Description: "Foreign currency purchased"}}
	cat, err := catalog.New(defs, nil)
	testutil.AssertNoError(t, err)

	defs[0].Code = 999
	if got := cat.Totalizers()[0].Code; got != 100 {
		t.Errorf("expected totalizer code 100 after caller mutation, got %d", got)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.xml"))
		testutil.AssertAppError(t, err, "CONFIGURATION_MISSING")
	})

	t.Run("reads_file_from_disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.xml")
		if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
			t.Fatalf("failed to write catalog fixture: %v", err)
		}

		cat, err := catalog.Load(path)
		testutil.AssertNoError(t, err)
		if len(cat.Types()) != 2 {
			t.Errorf("expected 2 transaction types, got %d", len(cat.Types()))
		}
	})
}

func TestFindTypeDefinition(t *testing.T) {
	cat, err := catalog.Parse([]byte(sampleCatalog))
	testutil.AssertNoError(t, err)

	_, err = cat.FindTypeDefinition(100, 99)
	testutil.AssertAppError(t, err, "TRANSACTION_TYPE_NOT_FOUND")
}

func TestKindNames(t *testing.T) {
	for _, kind := range []catalog.TransactionKind{
		catalog.KindCurrencyBuy,
		catalog.KindCurrencySell,
		catalog.KindTreasuryTransfer,
		catalog.KindProductSale,
	} {
		parsed, ok := catalog.KindFromName(kind.String())
		if !ok || parsed != kind {
			t.Errorf("kind %d did not round-trip through %q", kind, kind.String())
		}
	}

	if _, ok := catalog.KindFromName("lottery"); ok {
		t.Error("expected lottery to be rejected")
	}
}
