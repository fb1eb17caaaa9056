// Package cfdi contiene utilidades del Anexo 20 del SAT (México) para trabajar
// con comprobantes ya timbrados: extracción del complemento TimbreFiscalDigital
// del XML y reconstrucción de su cadena original.
package cfdi

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Timbre representa el complemento TimbreFiscalDigital 1.1 de un CFDI timbrado.
type Timbre struct {
	Version          string
	UUID             string
	FechaTimbrado    string
	RfcProvCertif    string
	SelloCFD         string
	NoCertificadoSAT string
	SelloSAT         string
}

// ParseTimbre localiza el complemento TimbreFiscalDigital dentro del XML de un
// CFDI timbrado y devuelve sus atributos. El elemento se busca por nombre local
// para tolerar cualquier prefijo de namespace (tfd:, ns2:, etc.).
func ParseTimbre(xmlData []byte) (*Timbre, error) {
	if len(xmlData) == 0 {
		return nil, fmt.Errorf("cfdi: XML vacío")
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return nil, fmt.Errorf("cfdi: parsear XML: %w", err)
	}

	el := findByLocalName(doc.Root(), "TimbreFiscalDigital")
	if el == nil {
		return nil, fmt.Errorf("cfdi: el XML no contiene TimbreFiscalDigital (¿comprobante sin timbrar?)")
	}

	t := &Timbre{
		Version:          el.SelectAttrValue("Version", ""),
		UUID:             el.SelectAttrValue("UUID", ""),
		FechaTimbrado:    el.SelectAttrValue("FechaTimbrado", ""),
		RfcProvCertif:    el.SelectAttrValue("RfcProvCertif", ""),
		SelloCFD:         el.SelectAttrValue("SelloCFD", ""),
		NoCertificadoSAT: el.SelectAttrValue("NoCertificadoSAT", ""),
		SelloSAT:         el.SelectAttrValue("SelloSAT", ""),
	}
	if t.UUID == "" {
		return nil, fmt.Errorf("cfdi: TimbreFiscalDigital sin atributo UUID")
	}
	return t, nil
}

// CadenaOriginal reconstruye la cadena original del complemento de certificación
// digital del SAT según el Anexo 20:
//
//	||Version|UUID|FechaTimbrado|RfcProvCertif|SelloCFD|NoCertificadoSAT||
func (t *Timbre) CadenaOriginal() string {
	version := t.Version
	if version == "" {
		version = "1.1"
	}
	fields := []string{version, t.UUID, t.FechaTimbrado, t.RfcProvCertif, t.SelloCFD, t.NoCertificadoSAT}
	return "||" + strings.Join(fields, "|") + "||"
}

// findByLocalName busca en profundidad el primer elemento cuyo nombre local coincida.
func findByLocalName(el *etree.Element, local string) *etree.Element {
	if el == nil {
		return nil
	}
	if el.Tag == local {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findByLocalName(child, local); found != nil {
			return found
		}
	}
	return nil
}
