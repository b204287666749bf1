package specs

// TilingInputs identify the calibrated scene to tile.
type TilingInputs struct {
	// Scene is the calibrated ContextScene reality-data id. Required.
	Scene string `json:"scene"`
}

// TilingOutputKind enumerates the outputs a tiling job may request.
type TilingOutputKind string

const (
	TilingOutputReferenceModel TilingOutputKind = "referenceModel"
)

var tilingOutputKinds = []TilingOutputKind{
	TilingOutputReferenceModel,
}

// TilingOutputs is the realized output set.
type TilingOutputs struct {
	ReferenceModel string `json:"referenceModel,omitempty"`
}

// GeometricPrecision values shared by tiling and reconstruction options.
const (
	GeometricPrecisionMedium = "medium"
	GeometricPrecisionHigh   = "high"
	GeometricPrecisionExtra  = "extra"
)

var geometricPrecisions = []string{
	GeometricPrecisionMedium,
	GeometricPrecisionHigh,
	GeometricPrecisionExtra,
}

// TilingOptions tune the tiling engine.
type TilingOptions struct {
	// SRS is the spatial reference system for the reference model.
	SRS string `json:"srs,omitempty"`

	GeometricPrecision string `json:"geometricPrecision,omitempty"`
}

func (o *TilingOptions) validate() error {
	if o == nil {
		return nil
	}
	return checkEnum("geometricPrecision", o.GeometricPrecision, geometricPrecisions)
}

// TilingSpecificationsCreate is the submit-time form.
type TilingSpecificationsCreate struct {
	Inputs  TilingInputs       `json:"inputs"`
	Outputs []TilingOutputKind `json:"outputs"`
	Options *TilingOptions     `json:"options,omitempty"`
}

func (TilingSpecificationsCreate) JobType() JobType { return Tiling }

func (s TilingSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := checkOutputs(Tiling, s.Outputs, tilingOutputKinds); err != nil {
		return err
	}
	return s.Options.validate()
}

// TilingSpecifications is the realized form.
type TilingSpecifications struct {
	Inputs  TilingInputs   `json:"inputs"`
	Outputs TilingOutputs  `json:"outputs"`
	Options *TilingOptions `json:"options,omitempty"`
}

func (*TilingSpecifications) JobType() JobType { return Tiling }

func (s *TilingSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	return s.Options.validate()
}
