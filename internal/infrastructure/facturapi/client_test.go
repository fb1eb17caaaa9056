package facturapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptica/aurea-api/internal/domain"
)

const testAPIKey = "sk_test_abc123"

func TestClient_BasicAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(Invoice{ID: "inv-1"})
	}))
	defer srv.Close()

	client := New(srv.URL, testAPIKey)
	_, err := client.GetInvoice(context.Background(), "inv-1")
	require.NoError(t, err)

	// Basic auth con la key como usuario y password vacío.
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte(testAPIKey+":"))
	assert.Equal(t, want, gotAuth)
}

func TestClient_ErrorSubeComoUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"El RFC del receptor no es válido"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, testAPIKey)
	_, err := client.CreateInvoice(context.Background(), InvoiceCreate{})

	require.Error(t, err)
	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
	assert.Equal(t, "El RFC del receptor no es válido", upstream.Message)
	assert.Contains(t, upstream.Body, "RFC del receptor")
}

func TestClient_SearchCustomerByTaxID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "AAA010101AAA", r.URL.Query().Get("q"))
		// La búsqueda del PAC es difusa: devuelve también RFCs parecidos.
		_ = json.NewEncoder(w).Encode(listResponse[Customer]{
			Page: 1, TotalPages: 1,
			Data: []Customer{
				{ID: "cust-similar", TaxID: "AAA010101AA1"},
				{ID: "cust-exact", TaxID: "AAA010101AAA"},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, testAPIKey)
	got, err := client.SearchCustomerByTaxID(context.Background(), "AAA010101AAA")

	require.NoError(t, err)
	require.NotNil(t, got)
	// Solo la coincidencia exacta de RFC cuenta.
	assert.Equal(t, "cust-exact", got.ID)
}

func TestClient_SearchCustomerSinCoincidencia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(listResponse[Customer]{Page: 1, TotalPages: 1})
	}))
	defer srv.Close()

	client := New(srv.URL, testAPIKey)
	got, err := client.SearchCustomerByTaxID(context.Background(), "XXX010101XXX")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_CancelInvoiceConMotivo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/invoices/inv-1", r.URL.Path)
		assert.Equal(t, "02", r.URL.Query().Get("motive"))
		_ = json.NewEncoder(w).Encode(CancelResult{ID: "inv-1", Status: "canceled"})
	}))
	defer srv.Close()

	client := New(srv.URL, testAPIKey)
	res, err := client.CancelInvoice(context.Background(), "inv-1", "02")

	require.NoError(t, err)
	assert.Equal(t, "canceled", res.Status)
}

func TestClient_UploadCertificateMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "secreta", r.FormValue("password"))

		cer, _, err := r.FormFile("cerFile")
		require.NoError(t, err)
		defer cer.Close()
		key, _, err := r.FormFile("keyFile")
		require.NoError(t, err)
		defer key.Close()

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, testAPIKey)
	err := client.UploadCertificate(context.Background(), "org-1", []byte("cer"), []byte("key"), "secreta")
	require.NoError(t, err)
}

func TestClient_DownloadRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/inv-1/pdf", r.URL.Path)
		_, _ = w.Write([]byte("%PDF-1.7 contenido"))
	}))
	defer srv.Close()

	client := New(srv.URL, testAPIKey)
	pdf, err := client.DownloadInvoicePDF(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 contenido"), pdf)
}
