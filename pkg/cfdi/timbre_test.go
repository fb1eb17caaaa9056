package cfdi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptica/aurea-api/pkg/cfdi"
)

// XML mínimo de un CFDI 4.0 timbrado, con el complemento bajo prefijo tfd:.
const sampleStampedXML = `<?xml version="1.0" encoding="utf-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Version="4.0" Folio="000001" Sello="SELLOCFD">
  <cfdi:Emisor Rfc="ACM010101AAA" Nombre="ACME" RegimenFiscal="601"/>
  <cfdi:Receptor Rfc="XAXX010101000" Nombre="PUBLICO EN GENERAL" UsoCFDI="S01"/>
  <cfdi:Complemento>
    <tfd:TimbreFiscalDigital xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital"
      Version="1.1"
      UUID="aaaabbbb-cccc-dddd-eeee-ffff00001111"
      FechaTimbrado="2026-02-14T10:30:00"
      RfcProvCertif="PPL961114GZ1"
      SelloCFD="SELLOCFD"
      NoCertificadoSAT="30001000000500003416"
      SelloSAT="SELLOSAT"/>
  </cfdi:Complemento>
</cfdi:Comprobante>`

func TestParseTimbre_ExtraeAtributos(t *testing.T) {
	timbre, err := cfdi.ParseTimbre([]byte(sampleStampedXML))
	require.NoError(t, err)

	assert.Equal(t, "aaaabbbb-cccc-dddd-eeee-ffff00001111", timbre.UUID)
	assert.Equal(t, "2026-02-14T10:30:00", timbre.FechaTimbrado)
	assert.Equal(t, "SELLOSAT", timbre.SelloSAT)
	assert.Equal(t, "30001000000500003416", timbre.NoCertificadoSAT)
}

func TestParseTimbre_SinTimbre(t *testing.T) {
	xml := `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" Version="4.0"/>`
	_, err := cfdi.ParseTimbre([]byte(xml))
	assert.Error(t, err, "un CFDI sin complemento de timbre debe fallar")
}

func TestParseTimbre_XMLInvalido(t *testing.T) {
	_, err := cfdi.ParseTimbre([]byte("esto no es XML"))
	assert.Error(t, err)
}

func TestCadenaOriginal_Formato(t *testing.T) {
	timbre, err := cfdi.ParseTimbre([]byte(sampleStampedXML))
	require.NoError(t, err)

	want := "||1.1|aaaabbbb-cccc-dddd-eeee-ffff00001111|2026-02-14T10:30:00|PPL961114GZ1|SELLOCFD|30001000000500003416||"
	assert.Equal(t, want, timbre.CadenaOriginal())
}

func TestNormalizeLegalName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Acme, S.A. de C.V.", "ACME"},
		{"  papelería   lópez  ", "PAPELERIA LOPEZ"},
		{"ACME", "ACME"},
		{"Servicios Contables, S. de R.L. de C.V.", "SERVICIOS CONTABLES"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cfdi.NormalizeLegalName(tc.in), "input: %q", tc.in)
	}
}

func TestNormalizeLegalName_Idempotente(t *testing.T) {
	once := cfdi.NormalizeLegalName("Acme, S.A. de C.V.")
	assert.Equal(t, once, cfdi.NormalizeLegalName(once))
}

func TestNormalizeRFC(t *testing.T) {
	assert.Equal(t, "ACM010101AAA", cfdi.NormalizeRFC(" acm010101aaa "))
}
