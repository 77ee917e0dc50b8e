package domain

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FeatureCount is the length of the classifier input vector.
const FeatureCount = 11

// FeatureVector is the ordered classifier input:
// police attendance, driver age, vehicle type, vehicle age, engine cc, day,
// weather, road surface, light, gender, speed limit.
type FeatureVector [FeatureCount]float64

// Prediction is the classifier output. Confidence is a percentage and is nil
// when the model does not expose class probabilities.
type Prediction struct {
	Label      string   `json:"prediction"`
	Confidence *float64 `json:"confidence"`
}

// Classifier runs single-vector inference against a pre-trained model.
// A nil Classifier means the model is unavailable.
type Classifier interface {
	Predict(ctx context.Context, features FeatureVector) (Prediction, error)
}

var (
	vehicleCodes = map[string]float64{"car": 3, "bike": 2, "truck": 4, "bus": 5}
	weatherCodes = map[string]float64{"clear": 1, "rain": 2, "fog": 3, "snow": 4}
)

// FeaturesFromPayload maps a loosely-typed request body onto the feature
// vector. Absent or unparseable values fall back to fixed defaults so partial
// payloads still produce a prediction.
func FeaturesFromPayload(p map[string]any) FeatureVector {
	vehicle, ok := number(p["vehicle_type"])
	if !ok {
		vehicle = namedCode(p["vehicle"], vehicleCodes, 3)
	}
	weather, ok := number(p["weather"])
	if !ok {
		weather = namedCode(p["weather"], weatherCodes, 1)
	}

	return FeatureVector{
		numberOr(p["Did_Police_Officer_Attend"], 0),
		numberOr(p["age_of_driver"], 30),
		vehicle,
		numberOr(p["age_of_vehicle"], 5),
		numberOr(p["engine_cc"], 1500),
		math.Trunc(numberOr(p["day"], 1)),
		math.Trunc(weather),
		math.Trunc(numberOr(p["roadsc"], 1)),
		math.Trunc(numberOr(p["light"], 1)),
		math.Trunc(numberOr(p["gender"], 1)),
		numberOr(p["speedl"], 40),
	}
}

func numberOr(v any, def float64) float64 {
	if n, ok := number(v); ok {
		return n
	}
	return def
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func namedCode(v any, names map[string]float64, def float64) float64 {
	s, ok := v.(string)
	if !ok {
		return def
	}
	if code, ok := names[strings.ToLower(strings.TrimSpace(s))]; ok {
		return code
	}
	return def
}
