package entity

import "time"

// FiscalLink materializa el invariante "una Organization por Account": el
// vínculo entre la cuenta y su identidad fiscal remota en el PAC. Se crea
// exactamente una vez; los timbrados posteriores lo reutilizan. Una cuenta
// sin FiscalLink se rechaza al timbrar.
type FiscalLink struct {
	OrganizationID string // id opaco asignado por el PAC
	RFC            string
	LegalName      string
	Ready          bool // is_fiscal_ready: la cuenta ya puede timbrar
	LinkedAt       time.Time
}
