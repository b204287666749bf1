package specs

// --- Constraints ---

// ConstraintsInputs attach geometric constraints to a scene.
type ConstraintsInputs struct {
	// Scene is the ContextScene reality-data id. Required.
	Scene string `json:"scene"`

	// Constraints are the constraint-file reality-data ids. Required.
	Constraints []string `json:"constraints"`
}

// ConstraintsOutputKind enumerates the outputs.
type ConstraintsOutputKind string

const (
	ConstraintsOutputScene ConstraintsOutputKind = "scene"
)

var constraintsOutputKinds = []ConstraintsOutputKind{
	ConstraintsOutputScene,
}

// ConstraintsOutputs is the realized output set.
type ConstraintsOutputs struct {
	Scene string `json:"scene,omitempty"`
}

// ConstraintsSpecificationsCreate is the submit-time form.
type ConstraintsSpecificationsCreate struct {
	Inputs  ConstraintsInputs       `json:"inputs"`
	Outputs []ConstraintsOutputKind `json:"outputs"`
}

func (ConstraintsSpecificationsCreate) JobType() JobType { return Constraints }

func (s ConstraintsSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := requiredList("constraints", s.Inputs.Constraints); err != nil {
		return err
	}
	return checkOutputs(Constraints, s.Outputs, constraintsOutputKinds)
}

// ConstraintsSpecifications is the realized form.
type ConstraintsSpecifications struct {
	Inputs  ConstraintsInputs  `json:"inputs"`
	Outputs ConstraintsOutputs `json:"outputs"`
}

func (*ConstraintsSpecifications) JobType() JobType { return Constraints }

func (s *ConstraintsSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	return requiredList("constraints", s.Inputs.Constraints)
}

// --- Water constraints ---

// WaterConstraintsInputs detect water surfaces to constrain reconstruction.
type WaterConstraintsInputs struct {
	// Scene is the ContextScene reality-data id. Required.
	Scene string `json:"scene"`

	// ReferenceModel is the model to analyse. Required.
	ReferenceModel string `json:"referenceModel"`
}

// WaterConstraintsOutputKind enumerates the outputs.
type WaterConstraintsOutputKind string

const (
	WaterConstraintsOutputConstraints WaterConstraintsOutputKind = "constraints"
)

var waterConstraintsOutputKinds = []WaterConstraintsOutputKind{
	WaterConstraintsOutputConstraints,
}

// WaterConstraintsOutputs is the realized output set.
type WaterConstraintsOutputs struct {
	Constraints string `json:"constraints,omitempty"`
}

// WaterConstraintsOptions tune water detection.
type WaterConstraintsOptions struct {
	// Resolution is the detection resolution in meters.
	Resolution float64 `json:"resolution,omitempty"`
}

// WaterConstraintsSpecificationsCreate is the submit-time form.
type WaterConstraintsSpecificationsCreate struct {
	Inputs  WaterConstraintsInputs       `json:"inputs"`
	Outputs []WaterConstraintsOutputKind `json:"outputs"`
	Options *WaterConstraintsOptions     `json:"options,omitempty"`
}

func (WaterConstraintsSpecificationsCreate) JobType() JobType { return WaterConstraints }

func (s WaterConstraintsSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := required("referenceModel", s.Inputs.ReferenceModel); err != nil {
		return err
	}
	return checkOutputs(WaterConstraints, s.Outputs, waterConstraintsOutputKinds)
}

// WaterConstraintsSpecifications is the realized form.
type WaterConstraintsSpecifications struct {
	Inputs  WaterConstraintsInputs   `json:"inputs"`
	Outputs WaterConstraintsOutputs  `json:"outputs"`
	Options *WaterConstraintsOptions `json:"options,omitempty"`
}

func (*WaterConstraintsSpecifications) JobType() JobType { return WaterConstraints }

func (s *WaterConstraintsSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	return required("referenceModel", s.Inputs.ReferenceModel)
}
