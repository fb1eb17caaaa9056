package dto

// LinkOrganizationRequest campos del multipart de POST /api/fiscal/organization.
// Certificate/Key/Password componen el CSD (Certificado de Sello Digital);
// los tres son opcionales pero se suben solo si vienen completos.
type LinkOrganizationRequest struct {
	LegalName string // razón social (obligatoria)
	Name      string // nombre comercial (opcional; si falta se usa la razón social)
	TaxID     string // RFC (obligatorio)
	TaxSystem string // régimen fiscal SAT, ej. "601"
	ZipCode   string // código postal del domicilio fiscal

	Certificate []byte // .cer
	Key         []byte // .key
	Password    string // contraseña de la llave
	Logo        []byte // opcional; si falta se adjunta el logo por defecto
}

// FiscalLinkResponse resultado del alta fiscal.
// Warnings acumula fallos no fatales (CSD, logo); la operación principal
// sigue siendo exitosa aunque existan.
type FiscalLinkResponse struct {
	OrganizationID string   `json:"id"`
	LegalName      string   `json:"legal_name"`
	RFC            string   `json:"tax_id"`
	Ready          bool     `json:"is_fiscal_ready"`
	Message        string   `json:"message"`
	Warnings       []string `json:"warnings,omitempty"`
}
