package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Specifications is the structured bag stored per product. At most one of
// the category shapes (Phone, Laptop) is set; other categories carry only the
// common fields.
type Specifications struct {
	Stars        float64           `json:"stars"`
	ReviewsCount int               `json:"reviewsCount"`
	OverallScore int               `json:"overall_score"`
	SpecLabels   map[string]string `json:"spec_labels"`
	Phone        *PhoneSpecs       `json:"phone,omitempty"`
	Laptop       *LaptopSpecs      `json:"laptop,omitempty"`
}

type PhoneSpecs struct {
	RAMGB            float64 `json:"ram_gb,omitempty"`
	StorageGB        float64 `json:"storage_gb,omitempty"`
	BatteryMAh       float64 `json:"battery_mah,omitempty"`
	CameraMP         float64 `json:"camera_mp,omitempty"`
	OLED             bool    `json:"oled"`
	CameraScore      int     `json:"camera_score"`
	BatteryScore     int     `json:"battery_score"`
	PerformanceScore int     `json:"performance_score"`
	DisplayScore     int     `json:"display_score"`
}

type LaptopSpecs struct {
	RAMGB            float64 `json:"ram_gb,omitempty"`
	StorageGB        float64 `json:"storage_gb,omitempty"`
	StorageType      string  `json:"storage_type,omitempty"`
	ScreenInches     float64 `json:"screen_inches,omitempty"`
	DedicatedGPU     bool    `json:"dedicated_gpu"`
	GPUModel         string  `json:"gpu_model,omitempty"`
	PerformanceScore int     `json:"performance_score"`
	DisplayScore     int     `json:"display_score"`
	GPUScore         int     `json:"gpu_score"`
}

// Value stores the bag as a JSON document.
func (s Specifications) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSON document produced by Value; NULL yields an empty bag.
func (s *Specifications) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Specifications{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("specifications: unsupported source type %T", src)
	}
	if len(data) == 0 {
		*s = Specifications{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Sources is the JSON column form of a product's source set.
type Sources []Source

func (s Sources) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Source(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Sources) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("sources: unsupported source type %T", src)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	var out []Source
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*s = out
	return nil
}
