package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTaxes_SoloIVA(t *testing.T) {
	taxes := BuildTaxes(true, false)

	require.Len(t, taxes, 1)
	assert.Equal(t, "IVA", taxes[0].Type)
	assert.True(t, taxes[0].Rate.Equal(decimal.NewFromFloat(0.16)))
	assert.False(t, taxes[0].Withholding)
}

func TestBuildTaxes_IVAYRetencion(t *testing.T) {
	taxes := BuildTaxes(true, true)

	require.Len(t, taxes, 2)
	assert.Equal(t, "IVA", taxes[0].Type)

	// La retención de ISR viaja como tipo "Tasa" y marcada como withholding.
	isr := taxes[1]
	assert.Equal(t, "ISR", isr.Type)
	assert.True(t, isr.Rate.Equal(decimal.NewFromFloat(0.0125)))
	assert.Equal(t, "Tasa", isr.FactorType)
	assert.True(t, isr.Withholding)
}

func TestBuildTaxes_SinImpuestos(t *testing.T) {
	taxes := BuildTaxes(false, false)
	assert.Empty(t, taxes)
}

func TestBuildTaxes_SoloRetencion(t *testing.T) {
	taxes := BuildTaxes(false, true)

	require.Len(t, taxes, 1)
	assert.Equal(t, "ISR", taxes[0].Type)
	assert.True(t, taxes[0].Withholding)
}
