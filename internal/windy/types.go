// Worldcams - Live Webcam Map Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/worldcams

package windy

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
)

// FlexibleID accepts webcam ids encoded as JSON numbers or strings.
type FlexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = FlexibleID(n.String())
	}
	return nil
}

// OptionalFloat holds a number that may be absent or of the wrong type.
// Anything other than a JSON number leaves it unset.
type OptionalFloat struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if n, ok := v.(float64); ok {
		*f = OptionalFloat{Value: n, Set: true}
	}
	return nil
}

// Tag is one upstream category, sent either as a plain string or as an
// {id, name} object.
type Tag string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Tag(s)
		return nil
	}
	var obj struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		*t = ""
		return nil
	}
	if obj.Name != "" {
		*t = Tag(obj.Name)
	} else {
		*t = Tag(obj.ID)
	}
	return nil
}

// Location is the upstream location block.
type Location struct {
	City      string        `json:"city"`
	Country   string        `json:"country"`
	Latitude  OptionalFloat `json:"latitude"`
	Longitude OptionalFloat `json:"longitude"`
}

// PlayerLinks holds the player URL variants. Not every response carries
// every field.
type PlayerLinks struct {
	Live     string `json:"live"`
	Day      string `json:"day"`
	Month    string `json:"month"`
	Year     string `json:"year"`
	Lifetime string `json:"lifetime"`
}

// URLSet wraps player links under url or urls.
type URLSet struct {
	Player *PlayerLinks `json:"player"`
}

// ImageVariant is one image size family.
type ImageVariant struct {
	Thumbnail string `json:"thumbnail"`
	Preview   string `json:"preview"`
	Daylight  string `json:"daylight"`
}

// ImageSet wraps the current image under image or images.
type ImageSet struct {
	Current *ImageVariant `json:"current"`
}

// Webcam is one raw record from the webcams or map/clusters endpoints.
// Its shape never leaves this package; callers get models.Camera.
type Webcam struct {
	WebcamID    FlexibleID    `json:"webcamId"`
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	Status      string        `json:"status"`
	ViewCount   OptionalFloat `json:"viewCount"`
	ClusterSize OptionalFloat `json:"clusterSize"`
	Location    *Location     `json:"location"`
	Image       *ImageSet     `json:"image"`
	Images      *ImageSet     `json:"images"`
	URL         *URLSet       `json:"url"`
	URLs        *URLSet       `json:"urls"`
	Player      *PlayerLinks  `json:"player"`
	Categories  []Tag         `json:"categories"`
}

// Clustered reports whether this record aggregates more than one webcam.
func (w Webcam) Clustered() bool {
	return w.ClusterSize.Set && w.ClusterSize.Value > 1
}

// envelope covers every response shape seen from the v3 API: lists under
// result.webcams or webcams, a single webcam under result.webcam, webcam,
// or flat at the top level, and totals under result.total or total.
type envelope struct {
	Result *struct {
		Webcams *[]Webcam     `json:"webcams"`
		Webcam  *Webcam       `json:"webcam"`
		Total   OptionalFloat `json:"total"`
	} `json:"result"`
	Webcams  *[]Webcam     `json:"webcams"`
	Webcam   *Webcam       `json:"webcam"`
	Total    OptionalFloat `json:"total"`
	WebcamID FlexibleID    `json:"webcamId"`
}

// list returns the webcam list and whether the response carried one at all.
func (e *envelope) list() ([]Webcam, bool) {
	if e.Result != nil && e.Result.Webcams != nil {
		return *e.Result.Webcams, true
	}
	if e.Webcams != nil {
		return *e.Webcams, true
	}
	return nil, false
}

// total returns the reported collection size, 0 when absent. A zero
// result.total falls through to the top-level total.
func (e *envelope) total() int {
	if e.Result != nil && e.Result.Total.Set && e.Result.Total.Value != 0 {
		return int(e.Result.Total.Value)
	}
	if e.Total.Set {
		return int(e.Total.Value)
	}
	return 0
}

// ExtractWebcams decodes a list response.
func ExtractWebcams(body []byte) ([]Webcam, int, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, 0, err
	}
	list, ok := env.list()
	if !ok {
		return nil, 0, ErrInvalidResponse
	}
	return list, env.total(), nil
}

// ExtractWebcam decodes a single-webcam response. A flat object qualifies
// when it carries webcamId.
func ExtractWebcam(body []byte) (Webcam, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Webcam{}, err
	}
	switch {
	case env.Result != nil && env.Result.Webcam != nil:
		return *env.Result.Webcam, nil
	case env.Webcam != nil:
		return *env.Webcam, nil
	case env.WebcamID != "":
		var flat Webcam
		if err := json.Unmarshal(body, &flat); err != nil {
			return Webcam{}, err
		}
		return flat, nil
	}
	return Webcam{}, ErrNotFound
}

// ExtractClusters decodes a map/clusters response, which is normally a bare
// array but is also accepted in list-envelope form.
func ExtractClusters(body []byte) ([]Webcam, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Webcam
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	list, _, err := ExtractWebcams(trimmed)
	return list, err
}

// ExtractCategoryNames decodes a categories response.
func ExtractCategoryNames(body []byte) ([]string, error) {
	var env struct {
		Result *struct {
			Categories []Tag `json:"categories"`
		} `json:"result"`
		Categories []Tag `json:"categories"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	tags := env.Categories
	if env.Result != nil && env.Result.Categories != nil {
		tags = env.Result.Categories
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			names = append(names, string(t))
		}
	}
	return names, nil
}
