// Package domain models UK road traffic accident records and the small set of
// types shared by the report pipeline.
//
// # Data Source
//
// The input is a per-incident CSV export in the STATS19 layout published by
// the UK Department for Transport. One row describes one collision. Only the
// columns the reports need are read; everything else in the row is ignored.
//
// # STATS19 Conventions
//
// Dates are day-first ("26/04/2024"). The time of day lives in a separate
// "time" column as "HH:MM"; the hour is the portion before the first colon.
//
// Collision severity:
//
//	1 = Fatal, 2 = Severe (serious injury), 3 = Slight
//
// Any other value (blank, "-1", "9", text) is treated as unknown. Unknown
// severity removes a record from severity-keyed aggregates only.
//
// Category columns (weather_conditions, light_conditions,
// road_surface_conditions, special_conditions_at_site, police_force) are
// integer codes. STATS19 uses -1 for "data missing or out of range"; that is
// still a valid code and is ranked like any other. A cell that does not parse
// as an integer is a missing code.
//
// Police attendance (did_police_officer_attend_scene_of_accident):
//
//	1 = attended, 2 = did not attend, 3 = did not attend (self-reported)
//
// Coordinates are WGS-84 decimal degrees. A zero on either axis is the
// dataset's placeholder for "no location".
//
// # Determinism
//
// Every ranking the reports emit has an explicit secondary key so that output
// never depends on map iteration order. See package analysis.
package domain
