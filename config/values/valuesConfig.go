package values

// IngestValues are the batch defaults of the webhook ingestion.
type IngestValues struct {
	DatasetLimit  int    `yaml:"dataset-limit"`
	DefaultSource string `yaml:"default-source"`
	Currency      string `yaml:"currency"`
}

func (v IngestValues) WithDefaults() IngestValues {
	if v.DatasetLimit <= 0 {
		v.DatasetLimit = 500
	}
	if v.DefaultSource == "" {
		v.DefaultSource = "Trendyol"
	}
	if v.Currency == "" {
		v.Currency = "TRY"
	}
	return v
}

// DisplayValues control placeholder states of the comparison read path.
type DisplayValues struct {
	FallbackImage string `yaml:"fallback-image"`
	CurrencyLabel string `yaml:"currency-label"`
}

func (v DisplayValues) WithDefaults() DisplayValues {
	if v.FallbackImage == "" {
		v.FallbackImage = "/images/product-placeholder.svg"
	}
	if v.CurrencyLabel == "" {
		v.CurrencyLabel = "TL"
	}
	return v
}
