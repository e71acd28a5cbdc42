// Package ana is a client for the ANA hydrological telemetry web service
// (ServiceANA.asmx). Every operation is one GET whose XML answer is validated,
// extracted into records and reshaped into an indexed Table.
package ana

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hidro-hq/ana-telemetry/pkg/httpclient"
)

const (
	// DefaultBaseURL is the public ServiceANA endpoint.
	DefaultBaseURL = "http://telemetriaws1.ana.gov.br/ServiceANA.asmx"

	defaultTimeout = 30 * time.Second
)

// ClientConfig holds construction options for Client.
type ClientConfig struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient defaults to a resty client built from Timeout and UserAgent.
	HTTPClient httpclient.Client

	Timeout   time.Duration
	UserAgent string
	Logger    Logger
}

// Client issues requests against one ServiceANA base URL. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    httpclient.Client
	log     Logger
}

// NewClient builds a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = httpclient.NewRestyClient(httpclient.Options{
			Timeout:   timeout,
			UserAgent: cfg.UserAgent,
		})
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		log:     ensureLogger(cfg.Logger),
	}
}

// BaseURL returns the endpoint root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// StationFilter narrows HidroInventario. Empty fields are sent empty, which
// the service reads as "no filter".
type StationFilter struct {
	Code         string // codEstDE, zero-padded to eight digits
	CodeTo       string // codEstATE, zero-padded to eight digits
	Type         StationType
	Gathering    Gathering
	Name         string
	River        string
	SubBasin     string
	Basin        string
	Municipality string
	State        string
	Responsible  string
	Operator     string
}

// TelemetricFilter narrows ListaEstacoesTelemetricas.
type TelemetricFilter struct {
	// Active selects active (true) or in-maintenance (false) stations; nil is all.
	Active *bool
	Origin Origin
}

// SeriesRequest asks HidroSerieHistorica for one station's monthly rows.
type SeriesRequest struct {
	StationCode string
	Start       string // dd/mm/yyyy, mandatory
	End         string // dd/mm/yyyy, mandatory
	Kind        SeriesKind
	Consistency Consistency
}

// DataRequest asks DadosHidrometeorologicos for one station's telemetry.
type DataRequest struct {
	StationCode string
	Start       string // dd/mm/yyyy, mandatory
	End         string // dd/mm/yyyy, mandatory
}

// ListRivers returns rivers indexed by nome. An empty riverCode lists all.
func (c *Client) ListRivers(ctx context.Context, riverCode string) (*Table, error) {
	params := url.Values{}
	params.Set("codRio", strings.TrimSpace(riverCode))
	return c.fetch(ctx, OpRivers, params, riversSchema)
}

// ListStates returns states indexed by nome. An empty stateCode lists all.
func (c *Client) ListStates(ctx context.Context, stateCode string) (*Table, error) {
	params := url.Values{}
	params.Set("codUf", strings.TrimSpace(stateCode))
	return c.fetch(ctx, OpStates, params, statesSchema)
}

// ListStations returns the station inventory indexed by nome.
func (c *Client) ListStations(ctx context.Context, f StationFilter) (*Table, error) {
	tpEst, err := f.Type.token()
	if err != nil {
		return nil, err
	}
	telemetrica, err := f.Gathering.token()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("codEstDE", PadStationCode(f.Code))
	params.Set("codEstATE", PadStationCode(f.CodeTo))
	params.Set("tpEst", tpEst)
	params.Set("nmEst", strings.TrimSpace(f.Name))
	params.Set("nmRio", strings.TrimSpace(f.River))
	params.Set("codSubBacia", strings.TrimSpace(f.SubBasin))
	params.Set("codBacia", strings.TrimSpace(f.Basin))
	params.Set("nmMunicipio", strings.TrimSpace(f.Municipality))
	params.Set("nmEstado", strings.TrimSpace(f.State))
	params.Set("sgResp", strings.TrimSpace(f.Responsible))
	params.Set("sgOper", strings.TrimSpace(f.Operator))
	params.Set("telemetrica", telemetrica)
	return c.fetch(ctx, OpInventory, params, inventorySchema)
}

// ListTelemetricStations returns the telemetric network indexed by codigo.
func (c *Client) ListTelemetricStations(ctx context.Context, f TelemetricFilter) (*Table, error) {
	origem, err := f.Origin.token()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("statusEstacoes", activeToken(f.Active))
	params.Set("origem", origem)
	return c.fetch(ctx, OpTelemetricList, params, telemetricListSchema)
}

// TimeSeries returns a station's historical series indexed by data_hora.
// Empty dates or kind fail before any request is made.
func (c *Client) TimeSeries(ctx context.Context, req SeriesRequest) (*Table, error) {
	start, err := requireDate("dataInicio", req.Start)
	if err != nil {
		return nil, err
	}
	end, err := requireDate("dataFim", req.End)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(req.Kind)) == "" {
		return nil, &ParameterError{Name: "tipoDados"}
	}
	kind := SeriesKind(strings.ToUpper(strings.TrimSpace(string(req.Kind))))
	tipoDados, err := kind.token()
	if err != nil {
		return nil, err
	}
	nivel, err := req.Consistency.token()
	if err != nil {
		return nil, err
	}
	schema, err := seriesSchema(kind)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("codEstacao", PadStationCode(req.StationCode))
	params.Set("dataInicio", start)
	params.Set("dataFim", end)
	params.Set("tipoDados", tipoDados)
	params.Set("nivelConsistencia", nivel)
	return c.fetch(ctx, OpHistoricalSeries, params, schema)
}

// StationData returns raw telemetric readings indexed by data_hora.
// Empty dates fail before any request is made.
func (c *Client) StationData(ctx context.Context, req DataRequest) (*Table, error) {
	start, err := requireDate("dataInicio", req.Start)
	if err != nil {
		return nil, err
	}
	end, err := requireDate("dataFim", req.End)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("codEstacao", PadStationCode(req.StationCode))
	params.Set("dataInicio", start)
	params.Set("dataFim", end)
	return c.fetch(ctx, OpHydrometeorologic, params, hydrometeorologicSchema)
}

// fetch performs the single round trip of an operation and turns the body
// into a table. Validation runs before any record or table is built.
func (c *Client) fetch(ctx context.Context, op string, params url.Values, schema Schema) (*Table, error) {
	endpoint := c.baseURL + "/" + op
	c.log.DebugObj("ana request", "ana_request", map[string]any{
		"operation": op,
		"query":     params.Encode(),
	})

	resp, err := c.http.Get(ctx, endpoint, params, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
	}

	doc, err := validateDocument(resp.StatusCode(), resp.Body())
	if err != nil {
		c.log.DebugObj("ana response rejected", "ana_response", map[string]any{
			"operation": op,
			"status":    resp.StatusCode(),
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := extractRecords(doc, schema.Path, schema.Fields())
	if err != nil {
		return nil, fmt.Errorf("%s: extract %s: %w", op, schema.Path, err)
	}

	table, err := Reshape(records, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.log.DebugObj("ana response parsed", "ana_response", map[string]any{
		"operation": op,
		"status":    resp.StatusCode(),
		"rows":      table.Len(),
	})
	return table, nil
}
