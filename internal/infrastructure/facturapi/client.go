// Package facturapi implementa el cliente REST hacia el PAC (Facturapi) que
// registra Organizations, Customers y timbra CFDI ante el SAT.
//
// Autenticación: Basic con la API key como usuario y password vacío,
// es decir "Basic " + base64(key + ":"). La key viene de configuración
// validada al arranque; no existe fallback embebido.
package facturapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/synaptica/aurea-api/internal/domain"
)

// maxErrorBody límite de lectura de cuerpos de error del PAC.
const maxErrorBody = 64 * 1024

// Client cliente HTTP hacia el PAC. Seguro para uso concurrente.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New construye el cliente. baseURL sin slash final, ej. https://www.facturapi.io/v2.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Cada paso del timbrado es una sola vuelta HTTP; 30 s cubre el
			// peor caso del timbrado en el SAT.
			Timeout: 30 * time.Second,
		},
	}
}

// errorBody forma de los errores del PAC: {"message": "..."}.
type errorBody struct {
	Message string `json:"message"`
}

// doJSON ejecuta una petición con cuerpo JSON opcional y decodifica la
// respuesta en out (si out no es nil). Respuestas no exitosas se convierten en
// *domain.UpstreamError con el mensaje original del PAC.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("facturapi: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("facturapi: crear request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("facturapi: deserializar respuesta: %w", err)
	}
	return nil
}

// doMultipart ejecuta una petición multipart/form-data (subida de CSD o logo).
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, files map[string][]byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("facturapi: escribir campo %s: %w", name, err)
		}
	}
	for name, data := range files {
		part, err := w.CreateFormFile(name, name)
		if err != nil {
			return fmt.Errorf("facturapi: crear parte %s: %w", name, err)
		}
		if _, err := part.Write(data); err != nil {
			return fmt.Errorf("facturapi: escribir archivo %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("facturapi: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("facturapi: crear request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err = c.send(req)
	return err
}

// doRaw ejecuta una petición y devuelve el cuerpo crudo (descargas PDF/XML).
func (c *Client) doRaw(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("facturapi: crear request: %w", err)
	}
	return c.send(req)
}

// send firma la petición, la ejecuta y lee el cuerpo completo.
func (c *Client) send(req *http.Request) ([]byte, error) {
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, fmt.Errorf("facturapi: timeout o cancelación: %w", req.Context().Err())
		}
		return nil, fmt.Errorf("facturapi: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("facturapi: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return nil, &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    eb.Message,
			Body:       string(raw),
		}
	}
	return raw, nil
}

// query construye un query string escapado.
func query(params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		v.Set(k, val)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
