package models

const BuildingInsightsType = "buildingInsights"

// StreetAddress is a two line postal address.
type StreetAddress struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// BuildingInsights is the full record returned by
// GET /buildingInsights:findClosest.
type BuildingInsights struct {
	Type                 string         `json:"type"`
	Name                 string         `json:"name"`
	StreetAddress        StreetAddress  `json:"streetAddress"`
	Center               LatLng         `json:"center"`
	BoundingBox          *LatLngBox     `json:"boundingBox,omitempty"`
	ImageryDate          DateInParts    `json:"imageryDate"`
	ImageryProcessedDate *DateInParts   `json:"imageryProcessedDate,omitempty"`
	PostalCode           string         `json:"postalCode,omitempty"`
	AdministrativeArea   string         `json:"administrativeArea,omitempty"`
	StatisticalArea      string         `json:"statisticalArea,omitempty"`
	RegionCode           string         `json:"regionCode,omitempty"`
	SolarPotential       SolarPotential `json:"solarPotential"`
	ImageryQuality       string         `json:"imageryQuality"`
}

type SolarPotential struct {
	MaxArrayPanelsCount        int                               `json:"maxArrayPanelsCount"`
	PanelCapacityWatts         float64                           `json:"panelCapacityWatts,omitempty"`
	PanelHeightMeters          float64                           `json:"panelHeightMeters,omitempty"`
	PanelWidthMeters           float64                           `json:"panelWidthMeters,omitempty"`
	PanelLifetimeYears         int                               `json:"panelLifetimeYears,omitempty"`
	MaxArrayAreaMeters2        float64                           `json:"maxArrayAreaMeters2"`
	MaxSunshineHoursPerYear    float64                           `json:"maxSunshineHoursPerYear"`
	CarbonOffsetFactorKgPerMwh float64                           `json:"carbonOffsetFactorKgPerMwh"`
	WholeRoofStats             SizeAndSunshineStats              `json:"wholeRoofStats"`
	BuildingStats              *SizeAndSunshineStats             `json:"buildingStats,omitempty"`
	RoofSegmentStats           []RoofSegmentSizeAndSunshineStats `json:"roofSegmentStats,omitempty"`
	SolarPanels                []SolarPanel                      `json:"solarPanels,omitempty"`
	SolarPanelConfigs          []SolarPanelConfig                `json:"solarPanelConfigs,omitempty"`
	FinancialAnalyses          []map[string]interface{}          `json:"financialAnalyses,omitempty"`
}

type SizeAndSunshineStats struct {
	AreaMeters2       float64   `json:"areaMeters2"`
	SunshineQuantiles []float64 `json:"sunshineQuantiles,omitempty"`
	GroundAreaMeters2 float64   `json:"groundAreaMeters2"`
}

type RoofSegmentSizeAndSunshineStats struct {
	PitchDegrees              float64              `json:"pitchDegrees"`
	AzimuthDegrees            float64              `json:"azimuthDegrees"`
	Stats                     SizeAndSunshineStats `json:"stats"`
	Center                    LatLng               `json:"center"`
	BoundingBox               LatLngBox            `json:"boundingBox"`
	PlaneHeightAtCenterMeters float64              `json:"planeHeightAtCenterMeters"`
}

type SolarPanel struct {
	Center            LatLng  `json:"center"`
	Orientation       string  `json:"orientation"`
	SegmentIndex      int     `json:"segmentIndex"`
	YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
}

type SolarPanelConfig struct {
	PanelsCount          int                  `json:"panelsCount"`
	YearlyEnergyDcKwh    float64              `json:"yearlyEnergyDcKwh"`
	RoofSegmentSummaries []RoofSegmentSummary `json:"roofSegmentSummaries,omitempty"`
}

type RoofSegmentSummary struct {
	PitchDegrees      float64 `json:"pitchDegrees"`
	AzimuthDegrees    float64 `json:"azimuthDegrees"`
	PanelsCount       int     `json:"panelsCount"`
	YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
	SegmentIndex      int     `json:"segmentIndex"`
}

// BuildingInsightsSummary is the reduced record streamed to clients. It
// drops imagery processing metadata, per-segment statistics, per-panel
// layout, financial analyses and regional codes.
type BuildingInsightsSummary struct {
	Type           string                `json:"type"`
	Name           string                `json:"name"`
	StreetAddress  StreetAddress         `json:"streetAddress"`
	Center         LatLng                `json:"center"`
	ImageryDate    DateInParts           `json:"imageryDate"`
	ImageryQuality string                `json:"imageryQuality"`
	SolarPotential SolarPotentialSummary `json:"solarPotential"`
}

type SolarPotentialSummary struct {
	MaxArrayPanelsCount        int                  `json:"maxArrayPanelsCount"`
	MaxArrayAreaMeters2        float64              `json:"maxArrayAreaMeters2"`
	MaxSunshineHoursPerYear    float64              `json:"maxSunshineHoursPerYear"`
	CarbonOffsetFactorKgPerMwh float64              `json:"carbonOffsetFactorKgPerMwh"`
	WholeRoofStats             RoofStatsSummary     `json:"wholeRoofStats"`
	SolarPanelConfigs          []PanelConfigSummary `json:"solarPanelConfigs,omitempty"`
}

type RoofStatsSummary struct {
	AreaMeters2       float64 `json:"areaMeters2"`
	GroundAreaMeters2 float64 `json:"groundAreaMeters2"`
}

type PanelConfigSummary struct {
	PanelsCount       int     `json:"panelsCount"`
	YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
}

// Summarize builds the reduced record. The receiver is not modified.
func (b *BuildingInsights) Summarize() *BuildingInsightsSummary {
	sp := b.SolarPotential
	out := &BuildingInsightsSummary{
		Type:           BuildingInsightsType,
		Name:           b.Name,
		StreetAddress:  b.StreetAddress,
		Center:         b.Center,
		ImageryDate:    b.ImageryDate,
		ImageryQuality: b.ImageryQuality,
		SolarPotential: SolarPotentialSummary{
			MaxArrayPanelsCount:        sp.MaxArrayPanelsCount,
			MaxArrayAreaMeters2:        sp.MaxArrayAreaMeters2,
			MaxSunshineHoursPerYear:    sp.MaxSunshineHoursPerYear,
			CarbonOffsetFactorKgPerMwh: sp.CarbonOffsetFactorKgPerMwh,
			WholeRoofStats: RoofStatsSummary{
				AreaMeters2:       sp.WholeRoofStats.AreaMeters2,
				GroundAreaMeters2: sp.WholeRoofStats.GroundAreaMeters2,
			},
		},
	}
	if len(sp.SolarPanelConfigs) > 0 {
		out.SolarPotential.SolarPanelConfigs = make([]PanelConfigSummary, len(sp.SolarPanelConfigs))
		for i, c := range sp.SolarPanelConfigs {
			out.SolarPotential.SolarPanelConfigs[i] = PanelConfigSummary{
				PanelsCount:       c.PanelsCount,
				YearlyEnergyDcKwh: c.YearlyEnergyDcKwh,
			}
		}
	}
	return out
}

// ChunkType tags the record in the area stream.
func (s *BuildingInsightsSummary) ChunkType() string { return s.Type }

// CondensedInsight is the per-building row kept for later filtering.
type CondensedInsight struct {
	ID                 string  `json:"id"`
	StreetAddress      string  `json:"streetAddress"`
	WholeRoofArea      float64 `json:"wholeRoofArea"`
	MaxSunshineHours   float64 `json:"maxSunshineHours"`
	MaxArrayArea       float64 `json:"maxArrayArea"`
	MaxPanelCount      int     `json:"maxPanelCount"`
	CarbonOffsetFactor float64 `json:"carbonOffsetFactor"`
}

// Condense projects the summary into the row stored in the user cache.
func (s *BuildingInsightsSummary) Condense() CondensedInsight {
	return CondensedInsight{
		ID:                 s.Name,
		StreetAddress:      s.StreetAddress.Line1,
		WholeRoofArea:      s.SolarPotential.WholeRoofStats.AreaMeters2,
		MaxSunshineHours:   s.SolarPotential.MaxSunshineHoursPerYear,
		MaxArrayArea:       s.SolarPotential.MaxArrayAreaMeters2,
		MaxPanelCount:      s.SolarPotential.MaxArrayPanelsCount,
		CarbonOffsetFactor: s.SolarPotential.CarbonOffsetFactorKgPerMwh,
	}
}
