package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrDuplicate          = errors.New("recurso duplicado")

	// ErrFiscalLinkMissing: la cuenta no tiene Organization vinculada; es la
	// puerta de autorización del timbrado (un perfil fiscal por emisor).
	ErrFiscalLinkMissing = errors.New("la cuenta no tiene perfil fiscal; completa tu configuración fiscal antes de facturar")

	// ErrQuotaExceeded: la cuenta free agotó su factura de prueba.
	ErrQuotaExceeded = errors.New("alcanzaste el límite de facturas de tu prueba gratuita; mejora tu plan para facturar sin límite")

	// ErrRecipientResolution: no se pudo encontrar ni crear el receptor en el PAC.
	ErrRecipientResolution = errors.New("no se pudo registrar al receptor de la factura")

	// ErrLinkPersistence: la Organization ya existe en el PAC pero el vínculo
	// local no se pudo guardar. Reintentar el alta fiscal es seguro: la
	// búsqueda por RFC reutiliza la Organization remota.
	ErrLinkPersistence = errors.New("la organización fiscal se creó pero no se pudo vincular a tu cuenta; intenta de nuevo")
)

// UpstreamError respuesta no exitosa del PAC o del almacén de identidad.
// Se propaga con el status y mensaje originales; nunca se silencia en la
// operación principal.
type UpstreamError struct {
	StatusCode int
	Message    string
	Body       string // cuerpo crudo de la respuesta, para diagnóstico
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.StatusCode)
}

// IsUpstream devuelve el UpstreamError envuelto en err, si existe.
func IsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
