package facturapi

import (
	"context"
	"net/http"
)

// SearchOrganizationByTaxID busca Organizations por RFC. Devuelve nil si no hay
// coincidencias; la existencia previa es lo que hace idempotente el alta fiscal.
func (c *Client) SearchOrganizationByTaxID(ctx context.Context, rfc string) (*Organization, error) {
	var list listResponse[Organization]
	if err := c.doJSON(ctx, http.MethodGet, "/organizations"+query(map[string]string{"q": rfc}), nil, &list); err != nil {
		return nil, err
	}
	// La búsqueda del PAC es textual; confirmar el RFC exacto.
	for i := range list.Data {
		if list.Data[i].Legal.TaxID == rfc {
			return &list.Data[i], nil
		}
	}
	return nil, nil
}

// CreateOrganization registra una nueva Organization (emisor) en el PAC.
func (c *Client) CreateOrganization(ctx context.Context, in OrganizationCreate) (*Organization, error) {
	var org Organization
	if err := c.doJSON(ctx, http.MethodPost, "/organizations", in, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

// UploadCertificate sube el CSD (certificado, llave y contraseña) de la
// Organization. El llamador trata el fallo como advertencia no fatal: la
// Organization existe y acepta el CSD más tarde.
func (c *Client) UploadCertificate(ctx context.Context, organizationID string, certificate, key []byte, password string) error {
	return c.doMultipart(ctx, http.MethodPut, "/organizations/"+organizationID+"/certificate",
		map[string]string{"password": password},
		map[string][]byte{"cerFile": certificate, "keyFile": key},
	)
}

// UploadLogo sube el logo de la Organization (también no fatal).
func (c *Client) UploadLogo(ctx context.Context, organizationID string, logo []byte) error {
	return c.doMultipart(ctx, http.MethodPut, "/organizations/"+organizationID+"/logo",
		nil,
		map[string][]byte{"file": logo},
	)
}
