package catalog

import (
	"encoding/xml"
	"fmt"
	"os"

	apperrors "caja/internal/errors"
)

// XML document shape for the catalog file:
//
//	<catalog>
//	  <totalizers>
//	    <totalizer code="1" description="Till cash"/>
//	  </totalizers>
//	  <transactions>
//	    <transaction code="300" subcode="2" description="Send to treasury" kind="treasury-transfer">
//	      <currencies primary="0" secondary="0"/>
//	      <effects>
//	        <effect totalizer="1" sign="-" leg="1"/>
//	      </effects>
//	    </transaction>
//	  </transactions>
//	</catalog>
type xmlCatalog struct {
	XMLName      xml.Name         `xml:"catalog"`
	Totalizers   []xmlTotalizer   `xml:"totalizers>totalizer"`
	Transactions []xmlTransaction `xml:"transactions>transaction"`
}

type xmlTotalizer struct {
	Code        int    `xml:"code,attr"`
	Description string `xml:"description,attr"`
}

type xmlTransaction struct {
	Code        int         `xml:"code,attr"`
	Subcode     int         `xml:"subcode,attr"`
	Description string      `xml:"description,attr"`
	Kind        string      `xml:"kind,attr"`
	Currencies  xmlCurrency `xml:"currencies"`
	Effects     []xmlEffect `xml:"effects>effect"`
}

type xmlCurrency struct {
	Primary   int `xml:"primary,attr"`
	Secondary int `xml:"secondary,attr"`
}

type xmlEffect struct {
	Totalizer int    `xml:"totalizer,attr"`
	Sign      string `xml:"sign,attr"`
	Leg       int    `xml:"leg,attr"`
}

// Load reads and parses the catalog XML file at path. A missing file
// fails with ErrConfigurationMissing; a malformed document or an entry
// with an unknown kind, sign or leg fails with ErrInvalidInput.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrConfigurationMissing, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw XML.
func Parse(data []byte) (*Catalog, error) {
	var doc xmlCatalog
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	totalizers := make([]TotalizerDefinition, 0, len(doc.Totalizers))
	for _, xt := range doc.Totalizers {
		totalizers = append(totalizers, TotalizerDefinition{Code: xt.Code, Description: xt.Description})
	}

	types := make([]*TransactionType, 0, len(doc.Transactions))
	for _, xt := range doc.Transactions {
		kind, ok := KindFromName(xt.Kind)
		if !ok {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("Unknown transaction kind %q for %d/%d", xt.Kind, xt.Code, xt.Subcode))
		}

		effects := make([]TotalizerEffect, 0, len(xt.Effects))
		for _, xe := range xt.Effects {
			sign := EffectSign(xe.Sign)
			if sign != SignPlus && sign != SignMinus {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
					fmt.Sprintf("Unknown effect sign %q for %d/%d", xe.Sign, xt.Code, xt.Subcode))
			}
			leg := Leg(xe.Leg)
			if leg != LegPrimary && leg != LegSecondary {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
					fmt.Sprintf("Unknown effect leg %d for %d/%d", xe.Leg, xt.Code, xt.Subcode))
			}
			effects = append(effects, TotalizerEffect{TotalizerCode: xe.Totalizer, Sign: sign, Leg: leg})
		}

		types = append(types, &TransactionType{
			Code:        xt.Code,
			Subcode:     xt.Subcode,
			Description: xt.Description,
			Kind:        kind,
			Currencies:  [2]int{xt.Currencies.Primary, xt.Currencies.Secondary},
			Effects:     effects,
		})
	}

	return New(totalizers, types)
}
