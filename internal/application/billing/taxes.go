package billing

import (
	"github.com/shopspring/decimal"
	"github.com/synaptica/aurea-api/internal/infrastructure/facturapi"
)

// Tasas SAT aplicables a los conceptos de este diseño.
var (
	ivaRate = decimal.NewFromFloat(0.16)   // IVA traslado, tasa general
	isrRate = decimal.NewFromFloat(0.0125) // ISR retención, régimen RESICO
)

// BuildTaxes arma el arreglo de impuestos del concepto de forma condicional:
// IVA solo si la petición lo marca, retención de ISR (tipo "Tasa") solo si hay
// retención positiva. Sin banderas, el arreglo queda vacío (concepto exento).
func BuildTaxes(iva, retention bool) []facturapi.Tax {
	taxes := make([]facturapi.Tax, 0, 2)
	if iva {
		taxes = append(taxes, facturapi.Tax{
			Type: "IVA",
			Rate: ivaRate,
		})
	}
	if retention {
		taxes = append(taxes, facturapi.Tax{
			Type:        "ISR",
			Rate:        isrRate,
			FactorType:  "Tasa",
			Withholding: true,
		})
	}
	return taxes
}
