package facturapi

import (
	"context"
	"net/http"
)

// SearchCustomerByTaxID busca receptores por RFC. Devuelve nil si no hay
// coincidencia exacta.
func (c *Client) SearchCustomerByTaxID(ctx context.Context, rfc string) (*Customer, error) {
	var list listResponse[Customer]
	if err := c.doJSON(ctx, http.MethodGet, "/customers"+query(map[string]string{"q": rfc}), nil, &list); err != nil {
		return nil, err
	}
	for i := range list.Data {
		if list.Data[i].TaxID == rfc {
			return &list.Data[i], nil
		}
	}
	return nil, nil
}

// CreateCustomer registra un receptor en el PAC.
func (c *Client) CreateCustomer(ctx context.Context, in CustomerCreate) (*Customer, error) {
	var customer Customer
	if err := c.doJSON(ctx, http.MethodPost, "/customers", in, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
