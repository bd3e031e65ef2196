package idecor

// wfsResponse is the subset of the GeoServer WFS GetFeature payload we read.
type wfsResponse struct {
	Features []wfsFeature `json:"features"`
}

type wfsFeature struct {
	Properties wfsParcel `json:"properties"`
}

type wfsParcel struct {
	Nomenclatura     string  `json:"nomenclatura"`
	ValorFiscalTotal float64 `json:"v_fiscal_total"`
	TipoSuelo        string  `json:"tipo_suelo"`
	SuperficieGraf   float64 `json:"superficie_grafica"`
}
