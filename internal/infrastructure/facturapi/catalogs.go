package facturapi

import (
	"context"
	"net/http"
)

// SearchProducts consulta el catálogo SAT de claves de producto/servicio.
// Passthrough puro: el resultado se entrega tal cual al cliente.
func (c *Client) SearchProducts(ctx context.Context, q string) ([]CatalogProduct, error) {
	var list listResponse[CatalogProduct]
	if err := c.doJSON(ctx, http.MethodGet, "/catalogs/products"+query(map[string]string{"q": q}), nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}
