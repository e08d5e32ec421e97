// Package domain models the gridded climate-normals and city datasets served
// by the atlas.
//
// # Data Sources
//
// Two static JSON endpoints feed the service. The monthly climate files
// (climate_jan.json .. climate_dec.json) each carry a regular lat/lon grid of
// 1991-2020 climate normals with three variables: mean temperature (°C),
// total precipitation (mm), and sunshine duration (hours). The city file
// (cities.json) carries one record per city with cost-of-living indices,
// climate-projection deltas, and a resilience assessment.
//
// # Grid Conventions
//
// Axes:
//
//	lats and lons are strictly monotonic and define a [len(lats)][len(lons)]
//	shape shared by all three variable grids. A typical file is 153 x 281.
//
// Missing cells:
//
//	Ocean and no-data cells are JSON null and decode to nil. Absence is
//	per-variable; a cell may have temperature but no sunshine. nil means
//	"skip", never zero.
//
// # City Conventions
//
// Identity fields (name, country, lat, lon) are always present. Every other
// numeric field is independently nullable and decodes to *float64. Upstream
// exports are known to emit the bare token NaN where a value is missing;
// [SanitizeNaN] rewrites those to null so the payload parses as strict JSON.
//
// Climate projections compare a 1991-2020 baseline with a 2050 scenario:
// temperature change in °C, precipitation change as a signed percentage, and
// the change in days above 35 °C.
//
// # Resilience Tiers
//
// The resilience score is a 0-100 composite. When the payload omits the
// categorical tier it is derived from the score:
//
//	>= 75 Low Risk | >= 50 Moderate Risk | >= 25 High Risk | < 25 Critical
//
// A nil score yields an unknown tier, rendered as "no data" rather than any
// risk bucket. See [DeriveRiskTier].
package domain
