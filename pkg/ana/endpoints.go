package ana

import (
	"fmt"
	"strings"
)

// Operation names on ServiceANA.asmx.
const (
	OpRivers            = "HidroRio"
	OpStates            = "HidroEstado"
	OpInventory         = "HidroInventario"
	OpTelemetricList    = "ListaEstacoesTelemetricas"
	OpHistoricalSeries  = "HidroSerieHistorica"
	OpHydrometeorologic = "DadosHidrometeorologicos"
)

const (
	tablePath       = ".//Table"
	seriesPath      = ".//SerieHistorica"
	telemetricPath  = ".//DadosHidrometereologicos"
	daysInSeriesRow = 31
)

var riversSchema = Schema{
	Path:  tablePath,
	Index: "nome",
	Columns: []Column{
		{Source: "Nome", Name: "nome"},
		{Source: "Codigo", Name: "codigo_rio", Optional: true},
		{Source: "BaciaCodigo", Name: "codigo_bacia", Optional: true},
		{Source: "SubBaciaCodigo", Name: "codigo_sub_bacia", Optional: true},
	},
}

var statesSchema = Schema{
	Path:  tablePath,
	Index: "nome",
	Columns: []Column{
		{Source: "Nome", Name: "nome"},
		{Source: "Sigla", Name: "sigla", Optional: true},
		{Source: "Codigo", Name: "codigo", Optional: true},
		{Source: "CodigoIBGE", Name: "codigo_ibge", Optional: true},
	},
}

var inventorySchema = Schema{
	Path:  tablePath,
	Index: "nome",
	Columns: []Column{
		{Source: "Codigo", Name: "codigo", Optional: true},
		{Source: "Nome", Name: "nome"},
		{Source: "Latitude", Name: "latitude", Optional: true},
		{Source: "Longitude", Name: "longitude", Optional: true},
		{Source: "Altitude", Name: "altitude", Optional: true},
		{Source: "AreaDrenagem", Name: "area", Optional: true},
		{Source: "nmEstado", Name: "estado", Optional: true},
		{Source: "nmMunicipio", Name: "municipio", Optional: true},
		{Source: "RioNome", Name: "rio", Optional: true},
		{Source: "TipoEstacao", Name: "tipo", Optional: true},
		{Source: "ResponsavelSigla", Name: "responsavel", Optional: true},
		{Source: "UltimaAtualizacao", Name: "ultima_atualizacao", Kind: KindDate, Optional: true},
		{Source: "PeriodoTelemetricaInicio", Name: "inicio_telemetria", Kind: KindDate, Optional: true},
		{Source: "PeriodoTelemetricaFim", Name: "fim_telemetria", Kind: KindDate, Optional: true},
	},
}

var telemetricListSchema = Schema{
	Path:  tablePath,
	Index: "codigo",
	Columns: []Column{
		{Source: "NomeEstacao", Name: "nome", Optional: true},
		{Source: "CodEstacao", Name: "codigo"},
		{Source: "Bacia", Name: "bacia", Optional: true},
		{Source: "SubBacia", Name: "sub_bacia", Optional: true},
		{Source: "Operadora", Name: "operadora", Optional: true},
		{Source: "Responsavel", Name: "responsavel", Optional: true},
		{Source: "Municipio-UF", Name: "municipio_uf", Optional: true},
		{Source: "Latitude", Name: "latitude", Optional: true},
		{Source: "Longitude", Name: "longitude", Optional: true},
		{Source: "Altitude", Name: "altitude", Optional: true},
		{Source: "CodRio", Name: "codigo_rio", Optional: true},
		{Source: "NomeRio", Name: "rio", Optional: true},
		{Source: "Origem", Name: "origem", Optional: true},
		{Source: "StatusEstacao", Name: "status", Optional: true},
	},
}

var hydrometeorologicSchema = Schema{
	Path:  telemetricPath,
	Index: "data_hora",
	Columns: []Column{
		{Source: "CodEstacao", Name: "codigo"},
		{Source: "DataHora", Name: "data_hora", Kind: KindDate},
		{Source: "Vazao", Name: "vazao", Optional: true},
		{Source: "Nivel", Name: "nivel", Optional: true},
		{Source: "Chuva", Name: "chuva", Optional: true},
	},
}

// seriesDailyPrefix names the per-day child elements of each series kind.
var seriesDailyPrefix = map[SeriesKind]string{
	Levels:        "Cota",
	Precipitation: "Chuva",
	Flows:         "Vazao",
}

// seriesSchema builds the HidroSerieHistorica schema for kind: fixed header
// columns, optional statistics and the 31 daily value columns.
func seriesSchema(kind SeriesKind) (Schema, error) {
	prefix, ok := seriesDailyPrefix[kind]
	if !ok {
		return Schema{}, fmt.Errorf("%w: series kind %q", ErrInvalidParameter, string(kind))
	}

	cols := []Column{
		{Source: "EstacaoCodigo", Name: "codigo"},
		{Source: "NivelConsistencia", Name: "nivel_consistencia"},
		{Source: "DataHora", Name: "data_hora", Kind: KindDate},
		{Source: "MediaDiaria", Name: "media_diaria", Optional: true},
		{Source: "MetodoObtencao", Name: "metodo_obtencao", Optional: true},
		{Source: "Maxima", Name: "maxima", Optional: true},
		{Source: "Minima", Name: "minima", Optional: true},
		{Source: "Media", Name: "media", Optional: true},
		{Source: "DiaMaxima", Name: "dia_maxima", Optional: true},
		{Source: "DiaMinima", Name: "dia_minima", Optional: true},
	}
	for day := 1; day <= daysInSeriesRow; day++ {
		cols = append(cols, Column{
			Source:   fmt.Sprintf("%s%02d", prefix, day),
			Name:     fmt.Sprintf("%s_%02d", strings.ToLower(prefix), day),
			Optional: true,
		})
	}

	return Schema{Path: seriesPath, Index: "data_hora", Columns: cols}, nil
}
