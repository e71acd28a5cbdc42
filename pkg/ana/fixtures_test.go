package ana

import (
	"context"
	"net/url"
	"sync"

	"github.com/hidro-hq/ana-telemetry/pkg/httpclient"
)

const riversXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <xs:schema id="NewDataSet" xmlns="" xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:msdata="urn:schemas-microsoft-com:xml-msdata">
    <xs:element name="NewDataSet" msdata:IsDataSet="true">
      <xs:complexType><xs:choice><xs:element name="Table"/></xs:choice></xs:complexType>
    </xs:element>
  </xs:schema>
  <diffgr:diffgram xmlns:msdata="urn:schemas-microsoft-com:xml-msdata" xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <NewDataSet xmlns="">
      <Table diffgr:id="Table1" msdata:rowOrder="0">
        <Codigo>10100000</Codigo>
        <Nome>RIO AMAZONAS</Nome>
        <BaciaCodigo>1</BaciaCodigo>
        <SubBaciaCodigo>10</SubBaciaCodigo>
        <RegistroAlterado>0</RegistroAlterado>
      </Table>
      <Table diffgr:id="Table2" msdata:rowOrder="1">
        <Codigo>56110000</Codigo>
        <Nome> RIO DOCE </Nome>
        <BaciaCodigo>5</BaciaCodigo>
        <SubBaciaCodigo>56</SubBaciaCodigo>
        <RegistroAlterado>0</RegistroAlterado>
      </Table>
    </NewDataSet>
  </diffgr:diffgram>
</DataTable>`

const statesXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <NewDataSet xmlns="">
      <Table>
        <Codigo>31</Codigo>
        <Sigla>MG</Sigla>
        <Nome>MINAS GERAIS</Nome>
        <CodigoIBGE>31</CodigoIBGE>
      </Table>
    </NewDataSet>
  </diffgr:diffgram>
</DataTable>`

const inventoryXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <NewDataSet xmlns="">
      <Table>
        <Codigo>00047000</Codigo>
        <Nome>SÃO FRANCISCO</Nome>
        <Latitude>-0.1500</Latitude>
        <Longitude>-49.2000</Longitude>
        <Altitude>5</Altitude>
        <AreaDrenagem>4680000</AreaDrenagem>
        <nmEstado>PARÁ</nmEstado>
        <nmMunicipio>AFUÁ</nmMunicipio>
        <RioNome>RIO AMAZONAS</RioNome>
        <TipoEstacao>1</TipoEstacao>
        <ResponsavelSigla>ANA</ResponsavelSigla>
        <UltimaAtualizacao>2019-06-03 00:00:00</UltimaAtualizacao>
        <PeriodoTelemetricaInicio>2012-01-01 00:00:00</PeriodoTelemetricaInicio>
      </Table>
    </NewDataSet>
  </diffgr:diffgram>
</DataTable>`

// The DataSet serializer omits null columns, so the rain gauge has no
// AreaDrenagem or RioNome element.
const inventoryOmittedColumnsXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <NewDataSet xmlns="">
      <Table>
        <Codigo>00047000</Codigo>
        <Nome>SÃO FRANCISCO</Nome>
        <Latitude>-0.1500</Latitude>
        <Longitude>-49.2000</Longitude>
        <Altitude>5</Altitude>
        <AreaDrenagem>4680000</AreaDrenagem>
        <nmEstado>PARÁ</nmEstado>
        <nmMunicipio>AFUÁ</nmMunicipio>
        <RioNome>RIO AMAZONAS</RioNome>
        <TipoEstacao>1</TipoEstacao>
        <ResponsavelSigla>ANA</ResponsavelSigla>
        <UltimaAtualizacao>2019-06-03 00:00:00</UltimaAtualizacao>
      </Table>
      <Table>
        <Codigo>00049001</Codigo>
        <Nome>AFUÁ</Nome>
        <Latitude>-0.1556</Latitude>
        <Longitude>-50.3847</Longitude>
        <Altitude>10</Altitude>
        <nmEstado>PARÁ</nmEstado>
        <nmMunicipio>AFUÁ</nmMunicipio>
        <TipoEstacao>2</TipoEstacao>
        <ResponsavelSigla>ANA</ResponsavelSigla>
      </Table>
    </NewDataSet>
  </diffgr:diffgram>
</DataTable>`

const telemetricListXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <NewDataSet xmlns="">
      <Table>
        <NomeEstacao>PORTO VELHO</NomeEstacao>
        <CodEstacao>15400000</CodEstacao>
        <Bacia>1</Bacia>
        <SubBacia>15</SubBacia>
        <Operadora>CPRM</Operadora>
        <Responsavel>ANA</Responsavel>
        <Municipio-UF>PORTO VELHO-RO</Municipio-UF>
        <Latitude>-8.7486</Latitude>
        <Longitude>-63.9172</Longitude>
        <Altitude>85</Altitude>
        <CodRio>15001000</CodRio>
        <NomeRio>RIO MADEIRA</NomeRio>
        <Origem>ANA/INPE</Origem>
        <StatusEstacao>Ativo</StatusEstacao>
      </Table>
    </NewDataSet>
  </diffgr:diffgram>
</DataTable>`

const seriesXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <DocumentElement xmlns="">
      <SerieHistorica>
        <EstacaoCodigo>15400000</EstacaoCodigo>
        <NivelConsistencia>1</NivelConsistencia>
        <DataHora>2020-01-01 00:00:00</DataHora>
        <MediaDiaria>1</MediaDiaria>
        <Maxima>1210</Maxima>
        <Minima>1002</Minima>
        <Media>1100.5</Media>
        <Cota01>1002</Cota01>
        <Cota02>1010</Cota02>
        <Cota31>1210</Cota31>
      </SerieHistorica>
      <SerieHistorica>
        <EstacaoCodigo>15400000</EstacaoCodigo>
        <NivelConsistencia>1</NivelConsistencia>
        <DataHora>2020-02-01 00:00:00</DataHora>
        <Cota01>1215</Cota01>
      </SerieHistorica>
    </DocumentElement>
  </diffgr:diffgram>
</DataTable>`

const stationDataXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <DocumentElement xmlns="">
      <DadosHidrometereologicos>
        <CodEstacao>15400000</CodEstacao>
        <DataHora>2024-03-01 10:15:00</DataHora>
        <Vazao></Vazao>
        <Nivel>512</Nivel>
        <Chuva>0.0</Chuva>
      </DadosHidrometereologicos>
      <DadosHidrometereologicos>
        <CodEstacao>15400000</CodEstacao>
        <DataHora>2024-03-01 10:00:00</DataHora>
        <Nivel>511</Nivel>
      </DadosHidrometereologicos>
    </DocumentElement>
  </diffgr:diffgram>
</DataTable>`

const errorTableXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <diffgr:diffgram xmlns:msdata="urn:schemas-microsoft-com:xml-msdata" xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
    <DocumentElement xmlns="">
      <ErrorTable diffgr:id="ErrorTable1" msdata:rowOrder="0">
        <Error>Não existem dados para o período solicitado.</Error>
      </ErrorTable>
    </DocumentElement>
  </diffgr:diffgram>
</DataTable>`

const emptyErrorTableXML = `<?xml version="1.0" encoding="utf-8"?>
<DataTable xmlns="http://MRCS/">
  <DocumentElement xmlns="">
    <ErrorTable><Error>   </Error></ErrorTable>
  </DocumentElement>
</DataTable>`

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }

type recordedCall struct {
	url   string
	query url.Values
}

// mockHTTPClient records every call and answers with a fixed status/body.
type mockHTTPClient struct {
	mu     sync.Mutex
	calls  []recordedCall
	status int
	body   string
	err    error
}

func (m *mockHTTPClient) Get(_ context.Context, rawURL string, query url.Values, _ map[string]string) (httpclient.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, recordedCall{url: rawURL, query: query})
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	return mockResponse{body: []byte(m.body), statusCode: status}, nil
}

func (m *mockHTTPClient) lastCall() recordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return recordedCall{}
	}
	return m.calls[len(m.calls)-1]
}
