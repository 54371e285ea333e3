// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

// Package validation validates decoded query parameters with
// go-playground/validator v10.
//
// A single validator instance is shared by all handlers. Besides the built-in
// tags it knows:
//
//   - cameraid: a catalog id ("windy-123", "times-square") or upstream id
//   - category: a category name, case-insensitive
//
// Error messages name fields by their `query` tag:
//
//	type nearbyQuery struct {
//	    RadiusKm float64 `query:"radiusKm" validate:"gt=0,lte=500"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    // verr.Error() == "radiusKm must be less than or equal to 500"
//	}
package validation
