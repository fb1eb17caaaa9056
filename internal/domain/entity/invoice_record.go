package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cancelación ante el SAT.
const (
	InvoiceStatusStamped  = "stamped"
	InvoiceStatusCanceled = "canceled"
)

// InvoiceRecord es el espejo local de un CFDI timbrado por el PAC. Es inmutable
// salvo por el estado de cancelación. Alimenta el conteo de cuota de la prueba,
// el listado de la cuenta y la representación impresa local.
type InvoiceRecord struct {
	ID             string // id del documento en el PAC
	AccountID      string
	OrganizationID string

	UUID              string // folio fiscal asignado por el SAT
	Folio             string
	IssuedAt          time.Time
	SelloSAT          string
	SelloCFDI         string
	CertificateNumber string
	OriginalChain     string // cadena original del complemento de certificación

	ReceiverRFC       string
	ReceiverLegalName string
	Description       string
	Quantity          decimal.Decimal
	UnitValue         decimal.Decimal
	Total             decimal.Decimal

	Status    string // stamped, canceled
	CreatedAt time.Time
	UpdatedAt time.Time
}
