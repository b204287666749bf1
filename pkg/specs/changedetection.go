package specs

// ChangeDetectionInputs identify the before/after geometry to compare.
// Both epochs must use the same geometry kind: two point-cloud sets or two
// mesh sets.
type ChangeDetectionInputs struct {
	PointClouds1 []string `json:"pointClouds1,omitempty"`
	PointClouds2 []string `json:"pointClouds2,omitempty"`
	Meshes1      []string `json:"meshes1,omitempty"`
	Meshes2      []string `json:"meshes2,omitempty"`
}

// ChangeDetectionOutputKind enumerates the outputs.
type ChangeDetectionOutputKind string

const (
	ChangeDetectionOutputObjects3D              ChangeDetectionOutputKind = "objects3D"
	ChangeDetectionOutputExportedLocations3DSHP ChangeDetectionOutputKind = "exportedLocations3DSHP"
)

var changeDetectionOutputKinds = []ChangeDetectionOutputKind{
	ChangeDetectionOutputObjects3D,
	ChangeDetectionOutputExportedLocations3DSHP,
}

// ChangeDetectionOutputs is the realized output set.
type ChangeDetectionOutputs struct {
	Objects3D              string `json:"objects3D,omitempty"`
	ExportedLocations3DSHP string `json:"exportedLocations3DSHP,omitempty"`
}

// ChangeDetectionOptions tune change detection thresholds.
type ChangeDetectionOptions struct {
	ColorThresholdLow  float64 `json:"colorThresholdLow,omitempty"`
	ColorThresholdHigh float64 `json:"colorThresholdHigh,omitempty"`
	DistThresholdLow   float64 `json:"distThresholdLow,omitempty"`
	DistThresholdHigh  float64 `json:"distThresholdHigh,omitempty"`

	// Resolution is the comparison resolution in meters.
	Resolution float64 `json:"resolution,omitempty"`

	// MinPoints is the minimum number of changed points forming an object.
	MinPoints int `json:"minPoints,omitempty"`

	SRS string `json:"srs,omitempty"`
}

func (i ChangeDetectionInputs) validate() error {
	clouds := len(i.PointClouds1) > 0 && len(i.PointClouds2) > 0
	meshes := len(i.Meshes1) > 0 && len(i.Meshes2) > 0
	if !clouds && !meshes {
		return missingInput("pointClouds1+pointClouds2 or meshes1+meshes2")
	}
	return nil
}

// ChangeDetectionSpecificationsCreate is the submit-time form.
type ChangeDetectionSpecificationsCreate struct {
	Inputs  ChangeDetectionInputs       `json:"inputs"`
	Outputs []ChangeDetectionOutputKind `json:"outputs"`
	Options *ChangeDetectionOptions     `json:"options,omitempty"`
}

func (ChangeDetectionSpecificationsCreate) JobType() JobType { return ChangeDetection }

func (s ChangeDetectionSpecificationsCreate) Validate() error {
	if err := s.Inputs.validate(); err != nil {
		return err
	}
	return checkOutputs(ChangeDetection, s.Outputs, changeDetectionOutputKinds)
}

// ChangeDetectionSpecifications is the realized form.
type ChangeDetectionSpecifications struct {
	Inputs  ChangeDetectionInputs   `json:"inputs"`
	Outputs ChangeDetectionOutputs  `json:"outputs"`
	Options *ChangeDetectionOptions `json:"options,omitempty"`
}

func (*ChangeDetectionSpecifications) JobType() JobType { return ChangeDetection }

func (s *ChangeDetectionSpecifications) Validate() error {
	return s.Inputs.validate()
}
