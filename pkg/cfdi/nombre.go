package cfdi

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sufijos de régimen societario que el SAT exige omitir en el Nombre del
// receptor/emisor de un CFDI 4.0 (la razón social se registra sin ellos).
var regimenSuffixes = []string{
	"S.A. DE C.V.",
	"SA DE CV",
	"S. DE R.L. DE C.V.",
	"S DE RL DE CV",
	"S.C.",
	"A.C.",
}

// NormalizeLegalName deja una razón social en la forma que valida el SAT:
// mayúsculas, sin acentos, sin espacios repetidos y sin el sufijo de régimen
// societario. Es idempotente.
func NormalizeLegalName(name string) string {
	// Descomponer y eliminar marcas diacríticas (á -> a, ñ se conserva como n
	// NO: la Ñ es significativa en RFC pero el SAT acepta N en razón social;
	// aquí se eliminan solo las marcas combinantes).
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, name)
	if err != nil {
		clean = name
	}

	clean = strings.ToUpper(strings.TrimSpace(clean))
	clean = strings.Join(strings.Fields(clean), " ")

	for _, suffix := range regimenSuffixes {
		if strings.HasSuffix(clean, " "+suffix) {
			clean = strings.TrimSpace(strings.TrimSuffix(clean, " "+suffix))
			break
		}
	}
	// Coma residual antes del sufijo recortado ("ACME, S.A. DE C.V.")
	clean = strings.TrimSuffix(clean, ",")
	return strings.TrimSpace(clean)
}

// NormalizeRFC deja un RFC en mayúsculas y sin espacios. No valida el dígito
// verificador; esa validación la hace el PAC al timbrar.
func NormalizeRFC(rfc string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rfc), " ", ""))
}
