package facturapi

import (
	"context"
	"net/http"
)

// CreateInvoice envía el payload de timbrado al PAC. Una sola llamada, sin
// reintentos locales: cualquier respuesta no exitosa sube como UpstreamError
// con el mensaje y cuerpo originales.
func (c *Client) CreateInvoice(ctx context.Context, in InvoiceCreate) (*Invoice, error) {
	var inv Invoice
	if err := c.doJSON(ctx, http.MethodPost, "/invoices", in, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvoice consulta un CFDI previamente timbrado.
func (c *Client) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	var inv Invoice
	if err := c.doJSON(ctx, http.MethodGet, "/invoices/"+id, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CancelInvoice cancela un CFDI ante el SAT con el motivo indicado ("01".."04").
func (c *Client) CancelInvoice(ctx context.Context, id, reason string) (*CancelResult, error) {
	var res CancelResult
	path := "/invoices/" + id + query(map[string]string{"motive": reason})
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DownloadInvoicePDF descarga la representación impresa generada por el PAC.
func (c *Client) DownloadInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/invoices/"+id+"/pdf")
}

// DownloadInvoiceXML descarga el XML timbrado.
func (c *Client) DownloadInvoiceXML(ctx context.Context, id string) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, "/invoices/"+id+"/xml")
}
