package specs

// GaussianSplatsInputs identify the scene to train splats from.
type GaussianSplatsInputs struct {
	// Scene is the calibrated ContextScene reality-data id. Required.
	Scene string `json:"scene"`

	// ReferenceModel seeds training with reconstructed geometry.
	ReferenceModel string `json:"referenceModel,omitempty"`
}

// GaussianSplatsOutputKind enumerates the outputs.
type GaussianSplatsOutputKind string

const (
	GaussianSplatsOutputSplats GaussianSplatsOutputKind = "gaussianSplats"
)

var gaussianSplatsOutputKinds = []GaussianSplatsOutputKind{
	GaussianSplatsOutputSplats,
}

// GaussianSplatsOutputs is the realized output set.
type GaussianSplatsOutputs struct {
	GaussianSplats string `json:"gaussianSplats,omitempty"`
}

// GaussianSplatsFormat values accepted by GaussianSplatsOptions.
const (
	GaussianSplatsFormatPLY = "ply"
	GaussianSplatsFormatSPZ = "spz"
)

// GaussianSplatsOptions tune splat training.
type GaussianSplatsOptions struct {
	Format     string `json:"format,omitempty"`
	Iterations int    `json:"iterations,omitempty"`
}

func (o *GaussianSplatsOptions) validate() error {
	if o == nil {
		return nil
	}
	return checkEnum("format", o.Format,
		[]string{GaussianSplatsFormatPLY, GaussianSplatsFormatSPZ})
}

// GaussianSplatsSpecificationsCreate is the submit-time form.
type GaussianSplatsSpecificationsCreate struct {
	Inputs  GaussianSplatsInputs       `json:"inputs"`
	Outputs []GaussianSplatsOutputKind `json:"outputs"`
	Options *GaussianSplatsOptions     `json:"options,omitempty"`
}

func (GaussianSplatsSpecificationsCreate) JobType() JobType { return GaussianSplats }

func (s GaussianSplatsSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := checkOutputs(GaussianSplats, s.Outputs, gaussianSplatsOutputKinds); err != nil {
		return err
	}
	return s.Options.validate()
}

// GaussianSplatsSpecifications is the realized form.
type GaussianSplatsSpecifications struct {
	Inputs  GaussianSplatsInputs   `json:"inputs"`
	Outputs GaussianSplatsOutputs  `json:"outputs"`
	Options *GaussianSplatsOptions `json:"options,omitempty"`
}

func (*GaussianSplatsSpecifications) JobType() JobType { return GaussianSplats }

func (s *GaussianSplatsSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	return s.Options.validate()
}
