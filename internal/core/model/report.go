package model

// Report document types. JSON key names are part of the downstream
// contract (the summary file is consumed by existing tooling), so they
// mirror the original export format exactly.

// GapRecord describes one interval between consecutive samples that
// exceeds the expected step.
type GapRecord struct {
	PrevTime         string `json:"prev_time"`
	NextTime         string `json:"next_time"`
	GapSeconds       int64  `json:"gap_seconds"`
	MissingPointsEst int    `json:"missing_points_est"`
}

// ContinuityReport is the time-continuity section. All failure modes are
// soft: Message explains why deeper stats are absent.
type ContinuityReport struct {
	Rows                  int         `json:"rows"`
	ExpectedStepSeconds   *int64      `json:"expected_step_seconds,omitempty"`
	Message               string      `json:"message,omitempty"`
	FirstTime             string      `json:"first_time,omitempty"`
	LastTime              string      `json:"last_time,omitempty"`
	ObservedPoints        int         `json:"observed_points"`
	ExpectedPointsEst     int         `json:"expected_points_est"`
	GapCount              int         `json:"gap_count"`
	MissingPointsTotalEst int         `json:"missing_points_total_est"`
	ContinuityRatioEst    float64     `json:"continuity_ratio_est"`
	Gaps                  []GapRecord `json:"gaps,omitempty"`
}

// CodeEntry is one bucket of the fixed code-field distribution. A nil
// Code is the NA bucket for rows whose cell failed numeric coercion.
type CodeEntry struct {
	Code    *int    `json:"four_types"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CodeFieldReport summarizes the four_types column.
type CodeFieldReport struct {
	Rows         int         `json:"rows"`
	Message      string      `json:"message,omitempty"`
	UniqueValues int         `json:"unique_values"`
	Distribution []CodeEntry `json:"distribution,omitempty"`
}

// GenderEntry is one bucket of the gender distribution.
type GenderEntry struct {
	Gender  string  `json:"gender"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// AgeStats carries descriptive statistics over the extracted ages.
type AgeStats struct {
	Rows         int      `json:"rows"`
	ParsedOkRows int      `json:"parsed_ok_rows"`
	AgeNonNull   int      `json:"age_non_null"`
	AgeMin       *float64 `json:"age_min"`
	AgeMax       *float64 `json:"age_max"`
	AgeMean      *float64 `json:"age_mean"`
	AgeMedian    *float64 `json:"age_median"`
}

// AgeBucket is a single-year age frequency bucket.
type AgeBucket struct {
	AgeBucket string  `json:"age_bucket"`
	Count     int     `json:"count"`
	Percent   float64 `json:"percent"`
}

// PreviewRow is one row of the demographic extraction preview.
type PreviewRow struct {
	ParsedGender *string  `json:"parsed_gender"`
	ParsedAge    *float64 `json:"parsed_age"`
}

// DemographicReport is the payload gender/age section.
type DemographicReport struct {
	Rows               int           `json:"rows"`
	Message            string        `json:"message,omitempty"`
	GenderDistribution []GenderEntry `json:"gender_distribution,omitempty"`
	AgeStats           *AgeStats     `json:"age_stats,omitempty"`
	AgeBuckets         []AgeBucket   `json:"age_buckets,omitempty"`
	Preview            []PreviewRow  `json:"preview,omitempty"`
}

// DistributionEntry is one bucket of a configured boolean/categorical
// attribute summary. "NA" labels rows that contributed no value.
type DistributionEntry struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// NumericSummary is the summary of a configured number attribute.
type NumericSummary struct {
	Rows    int      `json:"rows"`
	NonNull int      `json:"non_null"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Mean    *float64 `json:"mean"`
	Median  *float64 `json:"median"`
}

// AttributeReport is the summary for one configured attribute. Summary is
// []DistributionEntry for boolean/categorical kinds, *NumericSummary for
// number.
type AttributeReport struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Summary any    `json:"summary"`
}

// ConfigReport is the configuration-driven attribute section.
type ConfigReport struct {
	Enabled    bool              `json:"enabled"`
	Message    string            `json:"message,omitempty"`
	Attributes []AttributeReport `json:"attributes,omitempty"`
}

// Report is the assembled analysis document. Once built it is treated as
// an immutable snapshot.
type Report struct {
	GeneratedAt    string             `json:"generated_at"`
	OutputDir      string             `json:"output_dir"`
	TimestreamCSV  string             `json:"timestream_csv"`
	DynamoDBCSV    string             `json:"dynamodb_csv"`
	TimeContinuity *ContinuityReport  `json:"time_continuity"`
	CodeField      *CodeFieldReport   `json:"four_types"`
	Demographics   *DemographicReport `json:"dynamodb_json"`
	ConfigSummary  *ConfigReport      `json:"dynamodb_cfg"`
}
