package config

import "solar-leads/models"

const ENV_PROD = "prod"

// Area search
// The Solar API data layers endpoint rejects radii above 100 meters.
const AREA_RADIUS_METERS = 100
const MAX_RANKED_BUILDINGS = 100
const DATA_LAYERS_VIEW = models.ViewImageryAndAnnualFlux

// External API base URLs
const SOLAR_API_BASE_URL = "https://solar.googleapis.com"
const OVERPASS_API_BASE_URL = "https://overpass-api.de/api"
const MAPBOX_API_BASE_URL = "https://api.mapbox.com"
const ENDATO_API_BASE_URL = "https://devapi.endato.com"

// Users
const USER_HEADER = "X-User-Email"
const ANONYMOUS_USER = "anonymous"

// Nearby buildings lookup
const DEFAULT_NEARBY_RADIUS_METERS = 500
const MAX_NEARBY_RADIUS_METERS = 5000

// PrimaryLayers are the layers streamed first by an area search.
var PrimaryLayers = []models.LayerID{models.LayerMask, models.LayerDSM, models.LayerAnnualFlux}
