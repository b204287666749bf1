package specs

// ReconstructionInputs identify the scene and optional reference model.
type ReconstructionInputs struct {
	// Scene is the calibrated ContextScene reality-data id. Required.
	Scene string `json:"scene"`

	// ReferenceModel resumes reconstruction from an existing model.
	ReferenceModel string `json:"referenceModel,omitempty"`
}

// ReconstructionOutputKind enumerates the outputs a reconstruction job may
// request.
type ReconstructionOutputKind string

const (
	ReconstructionOutputReferenceModel ReconstructionOutputKind = "referenceModel"
	ReconstructionOutputReport         ReconstructionOutputKind = "report"
)

var reconstructionOutputKinds = []ReconstructionOutputKind{
	ReconstructionOutputReferenceModel,
	ReconstructionOutputReport,
}

// ReconstructionOutputs is the realized output set.
type ReconstructionOutputs struct {
	ReferenceModel string `json:"referenceModel,omitempty"`
	Report         string `json:"report,omitempty"`
}

// ReconstructionOptions tune the reconstruction engine.
type ReconstructionOptions struct {
	SRS                string `json:"srs,omitempty"`
	GeometricPrecision string `json:"geometricPrecision,omitempty"`
}

func (o *ReconstructionOptions) validate() error {
	if o == nil {
		return nil
	}
	return checkEnum("geometricPrecision", o.GeometricPrecision, geometricPrecisions)
}

// ReconstructionSpecificationsCreate is the submit-time form.
type ReconstructionSpecificationsCreate struct {
	Inputs  ReconstructionInputs       `json:"inputs"`
	Outputs []ReconstructionOutputKind `json:"outputs"`
	Options *ReconstructionOptions     `json:"options,omitempty"`
}

func (ReconstructionSpecificationsCreate) JobType() JobType { return Reconstruction }

func (s ReconstructionSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := checkOutputs(Reconstruction, s.Outputs, reconstructionOutputKinds); err != nil {
		return err
	}
	return s.Options.validate()
}

// ReconstructionSpecifications is the realized form.
type ReconstructionSpecifications struct {
	Inputs  ReconstructionInputs   `json:"inputs"`
	Outputs ReconstructionOutputs  `json:"outputs"`
	Options *ReconstructionOptions `json:"options,omitempty"`
}

func (*ReconstructionSpecifications) JobType() JobType { return Reconstruction }

func (s *ReconstructionSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	return s.Options.validate()
}
