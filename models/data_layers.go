package models

// DataLayerView selects which layers the Solar API returns.
type DataLayerView string

const (
	ViewDSMLayer                DataLayerView = "DSM_LAYER"
	ViewImageryLayers           DataLayerView = "IMAGERY_LAYERS"
	ViewImageryAndAnnualFlux    DataLayerView = "IMAGERY_AND_ANNUAL_FLUX_LAYERS"
	ViewImageryAndAllFluxLayers DataLayerView = "IMAGERY_AND_ALL_FLUX_LAYERS"
	ViewFullLayers              DataLayerView = "FULL_LAYERS"
)

// DateInParts is the Solar API calendar date.
type DateInParts struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DataLayersResponse is the JSON returned by GET /dataLayers:get.
type DataLayersResponse struct {
	ImageryDate          DateInParts `json:"imageryDate"`
	ImageryProcessedDate DateInParts `json:"imageryProcessedDate"`
	DSMURL               string      `json:"dsmUrl"`
	RGBURL               string      `json:"rgbUrl"`
	MaskURL              string      `json:"maskUrl"`
	AnnualFluxURL        string      `json:"annualFluxUrl"`
	MonthlyFluxURL       string      `json:"monthlyFluxUrl"`
	HourlyShadeURLs      []string    `json:"hourlyShadeUrls"`
	ImageryQuality       string      `json:"imageryQuality"`
}

// URL returns the download locator of a single-raster layer.
func (r *DataLayersResponse) URL(id LayerID) string {
	switch id {
	case LayerMask:
		return r.MaskURL
	case LayerDSM:
		return r.DSMURL
	case LayerAnnualFlux:
		return r.AnnualFluxURL
	case LayerMonthlyFlux:
		return r.MonthlyFluxURL
	case LayerRGB:
		return r.RGBURL
	}
	return ""
}

// DataLayers is the data layers response together with the decoded rasters
// of the requested layers.
type DataLayers struct {
	DataLayersResponse
	LayerSet
}
