package ana

import (
	"fmt"
	"strings"
	"time"
)

const stationCodeWidth = 8

// ServiceDateLayout is the dd/mm/yyyy form the date parameters expect.
const ServiceDateLayout = "02/01/2006"

// StationType filters the inventory by station kind (tpEst).
type StationType string

const (
	Fluviometric StationType = "F"
	Pluviometric StationType = "P"
)

// Gathering filters the inventory by how data is collected (telemetrica).
type Gathering string

const (
	Telemetric Gathering = "T"
	Manual     Gathering = "M"
)

// SeriesKind selects the historical series (tipoDados).
type SeriesKind string

const (
	Levels        SeriesKind = "L"
	Precipitation SeriesKind = "P"
	Flows         SeriesKind = "I"
)

// Consistency selects the data quality grade (nivelConsistencia).
type Consistency string

const (
	Raw       Consistency = "R"
	Processed Consistency = "P"
)

// Origin filters the telemetric network by origin (origem).
type Origin string

const (
	OriginAll             Origin = ""
	OriginANAINPE         Origin = "1"
	OriginANASIVAM        Origin = "2"
	OriginRESCONJ03       Origin = "3"
	OriginCotaOnline      Origin = "4"
	OriginSpecialProjects Origin = "5"
)

var (
	stationTypeTokens = map[StationType]string{Fluviometric: "1", Pluviometric: "2"}
	gatheringTokens   = map[Gathering]string{Telemetric: "1", Manual: "0"}
	seriesKindTokens  = map[SeriesKind]string{Levels: "1", Precipitation: "2", Flows: "3"}
	consistencyTokens = map[Consistency]string{Raw: "1", Processed: "2"}
)

var originTokens = map[Origin]bool{
	OriginANAINPE:         true,
	OriginANASIVAM:        true,
	OriginRESCONJ03:       true,
	OriginCotaOnline:      true,
	OriginSpecialProjects: true,
}

// PadStationCode left-pads codes shorter than eight characters with zeros.
// Empty stays empty so the filter is omitted.
func PadStationCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || len(code) >= stationCodeWidth {
		return code
	}
	return strings.Repeat("0", stationCodeWidth-len(code)) + code
}

// Date formats t the way dataInicio and dataFim expect it.
func Date(t time.Time) string {
	return t.Format(ServiceDateLayout)
}

func lookupToken[K ~string](name string, value K, tokens map[K]string) (string, error) {
	v := K(strings.ToUpper(strings.TrimSpace(string(value))))
	if v == "" {
		return "", nil
	}
	tok, ok := tokens[v]
	if !ok {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidParameter, name, string(value))
	}
	return tok, nil
}

func (s StationType) token() (string, error) { return lookupToken("station type", s, stationTypeTokens) }
func (g Gathering) token() (string, error)   { return lookupToken("gathering", g, gatheringTokens) }
func (k SeriesKind) token() (string, error)  { return lookupToken("series kind", k, seriesKindTokens) }
func (c Consistency) token() (string, error) { return lookupToken("consistency", c, consistencyTokens) }

func (o Origin) token() (string, error) {
	v := Origin(strings.TrimSpace(string(o)))
	if v == OriginAll || v == "0" {
		return "", nil
	}
	if !originTokens[v] {
		return "", fmt.Errorf("%w: origin %q", ErrInvalidParameter, string(o))
	}
	return string(v), nil
}

// activeToken maps the active-station flag: true is "0" (active), false is
// "1" (in maintenance), nil leaves statusEstacoes empty.
func activeToken(active *bool) string {
	if active == nil {
		return ""
	}
	if *active {
		return "0"
	}
	return "1"
}

// requireDate rejects an empty mandatory date parameter.
func requireDate(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", &ParameterError{Name: name}
	}
	return value, nil
}
