package idecor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/connect-inmobiliaria/crm-service/internal/domain"
)

const (
	typeName      = "informacion_catastral:parcelas"
	defaultSource = "IDECOR"
)

// Lookup resolves a parcel against the cadastral registry.
type Lookup interface {
	Parcel(ctx context.Context, parcelID string) (*domain.CadastralData, error)
}

// Client queries the IDECOR WFS endpoint of the province of Córdoba.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a WFS client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Parcel fetches the cadastral record for a nomenclature. A parcel that the
// registry does not know yields an unverified record, not an error; errors
// are reserved for transport and decoding failures.
func (c *Client) Parcel(ctx context.Context, parcelID string) (*domain.CadastralData, error) {
	params := url.Values{}
	params.Set("service", "WFS")
	params.Set("version", "2.0.0")
	params.Set("request", "GetFeature")
	params.Set("typeName", typeName)
	params.Set("outputFormat", "application/json")
	params.Set("cql_filter", fmt.Sprintf("nomenclatura='%s'", parcelID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("idecor wfs returned status %d", resp.StatusCode)
	}

	var payload wfsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if len(payload.Features) == 0 {
		return &domain.CadastralData{ParcelID: parcelID, Verified: false, Source: defaultSource}, nil
	}

	parcel := payload.Features[0].Properties
	return &domain.CadastralData{
		ParcelID:      parcel.Nomenclatura,
		AssessedValue: int64(parcel.ValorFiscalTotal),
		LandUse:       landUseOrDefault(parcel.TipoSuelo),
		AreaM2:        parcel.SuperficieGraf,
		Verified:      true,
		Source:        defaultSource,
	}, nil
}

func landUseOrDefault(raw string) string {
	if raw == "" {
		return "Urbano"
	}
	return raw
}
