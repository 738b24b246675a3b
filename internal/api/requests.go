// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/staywise/internal/validation"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// RecommendRequest is the body of POST /recommendations.
type RecommendRequest struct {
	Preferences string `json:"preferences" validate:"required,notblank,max=2000"`
}

// RefineRequest is the body of POST /recommendations/refine. An empty
// Initial runs the basic pass first.
type RefineRequest struct {
	Preferences string `json:"preferences" validate:"required,notblank,max=2000"`
	Initial     string `json:"initial" validate:"max=20000"`
}

// NearbyRequest holds the query parameters of GET /venues/nearby.
type NearbyRequest struct {
	Lat      *float64 `json:"lat" validate:"required,latitude"`
	Lng      *float64 `json:"lng" validate:"required,longitude"`
	RadiusKm float64  `json:"radius_km" validate:"gt=0,lte=500"`
}

// SimilarityRequest holds the query parameters of GET /similarity.
type SimilarityRequest struct {
	A string `json:"a" validate:"required,notblank"`
	B string `json:"b" validate:"required,notblank"`
}

// defaultNearbyRadiusKm applies when radius_km is omitted.
const defaultNearbyRadiusKm = 100

// parseNearbyRequest reads lat, lng and radius_km from the query string.
func parseNearbyRequest(q url.Values) (NearbyRequest, error) {
	req := NearbyRequest{RadiusKm: defaultNearbyRadiusKm}

	for name, dst := range map[string]**float64{"lat": &req.Lat, "lng": &req.Lng} {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%s must be a number", name)
		}
		*dst = &v
	}

	if raw := strings.TrimSpace(q.Get("radius_km")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, errors.New("radius_km must be a number")
		}
		req.RadiusKm = v
	}
	return req, nil
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is empty")
		default:
			return fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	return nil
}

// validateRequest validates req and writes the error response on failure.
// It returns false when the request was rejected.
func validateRequest(rw *ResponseWriter, req interface{}) bool {
	verr := validation.ValidateStruct(req)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
	return false
}
