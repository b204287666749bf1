// Package specs defines the typed specification model for reality-capture
// jobs: a closed family of per-job-kind specification records with lossless
// (de)serialization to the service wire JSON.
//
// Every variant shares the shape {inputs, outputs, options?} and exists in
// two forms: a create form whose outputs are the set of requested output
// kinds, and a realized form whose outputs carry the reality-data ids
// assigned by the service as the job runs.
package specs

import (
	"github.com/realitycloud/realitycloud/pkg/apierr"
)

// JobType discriminates the specification variant. The set is closed;
// deserialization of an unknown type fails with SpecSchemaError.
type JobType string

const (
	Calibration         JobType = "Calibration"
	Tiling              JobType = "Tiling"
	Reconstruction      JobType = "Reconstruction"
	Production          JobType = "Production"
	FillImageProperties JobType = "FillImageProperties"
	ImportPointCloud    JobType = "ImportPointCloud"
	TouchUpImport       JobType = "TouchUpImport"
	TouchUpExport       JobType = "TouchUpExport"
	Constraints         JobType = "Constraints"
	WaterConstraints    JobType = "WaterConstraints"
	GaussianSplats      JobType = "GaussianSplats"
	Conversion          JobType = "Conversion"
	Objects2D           JobType = "Objects2D"
	Objects3D           JobType = "Objects3D"
	Segmentation2D      JobType = "Segmentation2D"
	Segmentation3D      JobType = "Segmentation3D"
	SegmentationOrtho   JobType = "SegmentationOrtho"
	ChangeDetection     JobType = "ChangeDetection"
	Training            JobType = "Training"
	Evaluation          JobType = "Evaluation"
)

// Service identifies the remote engine a job runs on.
type Service string

const (
	// ServiceModeling is the reality-modeling engine.
	ServiceModeling Service = "reality-modeling"

	// ServiceAnalysis is the reality-analysis engine.
	ServiceAnalysis Service = "reality-analysis"
)

// serviceByType is the authoritative job-type → service mapping. It is
// closed and stable across releases.
var serviceByType = map[JobType]Service{
	Calibration:         ServiceModeling,
	Tiling:              ServiceModeling,
	Reconstruction:      ServiceModeling,
	Production:          ServiceModeling,
	FillImageProperties: ServiceModeling,
	ImportPointCloud:    ServiceModeling,
	TouchUpImport:       ServiceModeling,
	TouchUpExport:       ServiceModeling,
	Constraints:         ServiceModeling,
	WaterConstraints:    ServiceModeling,
	GaussianSplats:      ServiceModeling,
	Conversion:          ServiceModeling,
	Objects2D:           ServiceAnalysis,
	Objects3D:           ServiceAnalysis,
	Segmentation2D:      ServiceAnalysis,
	Segmentation3D:      ServiceAnalysis,
	SegmentationOrtho:   ServiceAnalysis,
	ChangeDetection:     ServiceAnalysis,
	Training:            ServiceAnalysis,
	Evaluation:          ServiceAnalysis,
}

// ServiceFor returns the service a job type runs on.
func ServiceFor(t JobType) (Service, error) {
	svc, ok := serviceByType[t]
	if !ok {
		return "", apierr.Newf(apierr.CodeSpecSchema, "unknown job type %q", string(t))
	}
	return svc, nil
}

// Known reports whether t is a recognized job type.
func Known(t JobType) bool {
	_, ok := serviceByType[t]
	return ok
}

// Types returns all recognized job types.
func Types() []JobType {
	out := make([]JobType, 0, len(serviceByType))
	for t := range serviceByType {
		out = append(out, t)
	}
	return out
}

// Specifications is the realized form of a job's specifications, as
// returned by the service.
type Specifications interface {
	// JobType returns the discriminating type tag.
	JobType() JobType

	// Validate checks required inputs and enumerated fields.
	Validate() error
}

// SpecificationsCreate is the submit-time form: outputs are the set of
// requested output kinds rather than realized identifiers.
type SpecificationsCreate interface {
	JobType() JobType
	Validate() error
}

// --- Validation helpers ---

func missingInput(field string) *apierr.Error {
	return apierr.Newf(apierr.CodeSpecSchema, "missing required input %q", field)
}

func required(field, value string) error {
	if value == "" {
		return missingInput(field)
	}
	return nil
}

func requiredList(field string, values []string) error {
	if len(values) == 0 {
		return missingInput(field)
	}
	return nil
}

// checkEnum validates an optional enumerated field against its closed
// value set. Empty means unset and passes.
func checkEnum[T ~string](field string, v T, valid []T) error {
	if v == "" {
		return nil
	}
	for _, ok := range valid {
		if v == ok {
			return nil
		}
	}
	return apierr.Newf(apierr.CodeSpecSchema, "unrecognized %s %q", field, string(v))
}

// checkOutputs validates a requested output set: non-empty, every kind
// recognized, no duplicates.
func checkOutputs[T ~string](jobType JobType, requested, valid []T) error {
	if len(requested) == 0 {
		return apierr.Newf(apierr.CodeSpecSchema, "%s: at least one output must be requested", jobType)
	}
	seen := make(map[T]bool, len(requested))
	for _, kind := range requested {
		if seen[kind] {
			return apierr.Newf(apierr.CodeSpecSchema, "%s: duplicate output %q", jobType, string(kind))
		}
		seen[kind] = true
		if err := checkEnum("output", kind, valid); err != nil {
			return err
		}
	}
	return nil
}
