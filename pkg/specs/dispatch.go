package specs

import (
	"encoding/json"

	"github.com/realitycloud/realitycloud/pkg/apierr"
)

// factories builds an empty realized specification for each job type. The
// dispatcher selects the variant from the outer type tag before validating
// the body.
var factories = map[JobType]func() Specifications{
	Calibration:         func() Specifications { return &CalibrationSpecifications{} },
	Tiling:              func() Specifications { return &TilingSpecifications{} },
	Reconstruction:      func() Specifications { return &ReconstructionSpecifications{} },
	Production:          func() Specifications { return &ProductionSpecifications{} },
	FillImageProperties: func() Specifications { return &FillImagePropertiesSpecifications{} },
	ImportPointCloud:    func() Specifications { return &ImportPointCloudSpecifications{} },
	TouchUpImport:       func() Specifications { return &TouchUpImportSpecifications{} },
	TouchUpExport:       func() Specifications { return &TouchUpExportSpecifications{} },
	Constraints:         func() Specifications { return &ConstraintsSpecifications{} },
	WaterConstraints:    func() Specifications { return &WaterConstraintsSpecifications{} },
	GaussianSplats:      func() Specifications { return &GaussianSplatsSpecifications{} },
	Conversion:          func() Specifications { return &ConversionSpecifications{} },
	Objects2D:           func() Specifications { return &Objects2DSpecifications{} },
	Objects3D:           func() Specifications { return &Objects3DSpecifications{} },
	Segmentation2D:      func() Specifications { return &Segmentation2DSpecifications{} },
	Segmentation3D:      func() Specifications { return &Segmentation3DSpecifications{} },
	SegmentationOrtho:   func() Specifications { return &SegmentationOrthoSpecifications{} },
	ChangeDetection:     func() Specifications { return &ChangeDetectionSpecifications{} },
	Training:            func() Specifications { return &TrainingSpecifications{} },
	Evaluation:          func() Specifications { return &EvaluationSpecifications{} },
}

// Unmarshal reconstructs the realized specification variant selected by
// jobType from its wire JSON. Unknown types, missing required inputs, and
// unrecognized enumerated values fail with SpecSchemaError.
func Unmarshal(jobType JobType, raw json.RawMessage) (Specifications, error) {
	factory, ok := factories[jobType]
	if !ok {
		return nil, apierr.Newf(apierr.CodeSpecSchema, "unknown job type %q", string(jobType))
	}

	spec := factory()
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, apierr.Wrap(apierr.CodeSpecSchema, "decode specifications", err).
			WithContext("type", string(jobType))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func decodeCreate[T SpecificationsCreate](raw json.RawMessage) (SpecificationsCreate, error) {
	var s T
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// createDecoders mirrors factories for the submit-time form.
var createDecoders = map[JobType]func(json.RawMessage) (SpecificationsCreate, error){
	Calibration:         decodeCreate[CalibrationSpecificationsCreate],
	Tiling:              decodeCreate[TilingSpecificationsCreate],
	Reconstruction:      decodeCreate[ReconstructionSpecificationsCreate],
	Production:          decodeCreate[ProductionSpecificationsCreate],
	FillImageProperties: decodeCreate[FillImagePropertiesSpecificationsCreate],
	ImportPointCloud:    decodeCreate[ImportPointCloudSpecificationsCreate],
	TouchUpImport:       decodeCreate[TouchUpImportSpecificationsCreate],
	TouchUpExport:       decodeCreate[TouchUpExportSpecificationsCreate],
	Constraints:         decodeCreate[ConstraintsSpecificationsCreate],
	WaterConstraints:    decodeCreate[WaterConstraintsSpecificationsCreate],
	GaussianSplats:      decodeCreate[GaussianSplatsSpecificationsCreate],
	Conversion:          decodeCreate[ConversionSpecificationsCreate],
	Objects2D:           decodeCreate[Objects2DSpecificationsCreate],
	Objects3D:           decodeCreate[Objects3DSpecificationsCreate],
	Segmentation2D:      decodeCreate[Segmentation2DSpecificationsCreate],
	Segmentation3D:      decodeCreate[Segmentation3DSpecificationsCreate],
	SegmentationOrtho:   decodeCreate[SegmentationOrthoSpecificationsCreate],
	ChangeDetection:     decodeCreate[ChangeDetectionSpecificationsCreate],
	Training:            decodeCreate[TrainingSpecificationsCreate],
	Evaluation:          decodeCreate[EvaluationSpecificationsCreate],
}

// UnmarshalCreate reconstructs the submit-time specification variant
// selected by jobType from JSON, validating it like Unmarshal does.
func UnmarshalCreate(jobType JobType, raw json.RawMessage) (SpecificationsCreate, error) {
	decode, ok := createDecoders[jobType]
	if !ok {
		return nil, apierr.Newf(apierr.CodeSpecSchema, "unknown job type %q", string(jobType))
	}

	spec, err := decode(raw)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeSpecSchema, "decode specifications", err).
			WithContext("type", string(jobType))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Marshal serializes a specification (either form) to wire JSON after
// validating it.
func Marshal(spec interface {
	JobType() JobType
	Validate() error
}) (json.RawMessage, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeSpecSchema, "encode specifications", err).
			WithContext("type", string(spec.JobType()))
	}
	return raw, nil
}
