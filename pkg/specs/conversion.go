package specs

// ConversionInputs identify the reality data to convert.
type ConversionInputs struct {
	// RealityDatas are the ids of the point clouds or meshes to convert.
	// Required.
	RealityDatas []string `json:"realityDatas"`
}

// ConversionOutputKind enumerates the target formats.
type ConversionOutputKind string

const (
	ConversionOutputLAS ConversionOutputKind = "las"
	ConversionOutputLAZ ConversionOutputKind = "laz"
	ConversionOutputOPC ConversionOutputKind = "opc"
	ConversionOutputPOD ConversionOutputKind = "pod"
)

var conversionOutputKinds = []ConversionOutputKind{
	ConversionOutputLAS,
	ConversionOutputLAZ,
	ConversionOutputOPC,
	ConversionOutputPOD,
}

// ConversionOutputs is the realized output set.
type ConversionOutputs struct {
	LAS string `json:"las,omitempty"`
	LAZ string `json:"laz,omitempty"`
	OPC string `json:"opc,omitempty"`
	POD string `json:"pod,omitempty"`
}

// ConversionOptions tune the conversion.
type ConversionOptions struct {
	// Merge combines all inputs into a single output file.
	Merge bool `json:"merge,omitempty"`

	SRS string `json:"srs,omitempty"`
}

// ConversionSpecificationsCreate is the submit-time form.
type ConversionSpecificationsCreate struct {
	Inputs  ConversionInputs       `json:"inputs"`
	Outputs []ConversionOutputKind `json:"outputs"`
	Options *ConversionOptions     `json:"options,omitempty"`
}

func (ConversionSpecificationsCreate) JobType() JobType { return Conversion }

func (s ConversionSpecificationsCreate) Validate() error {
	if err := requiredList("realityDatas", s.Inputs.RealityDatas); err != nil {
		return err
	}
	return checkOutputs(Conversion, s.Outputs, conversionOutputKinds)
}

// ConversionSpecifications is the realized form.
type ConversionSpecifications struct {
	Inputs  ConversionInputs   `json:"inputs"`
	Outputs ConversionOutputs  `json:"outputs"`
	Options *ConversionOptions `json:"options,omitempty"`
}

func (*ConversionSpecifications) JobType() JobType { return Conversion }

func (s *ConversionSpecifications) Validate() error {
	return requiredList("realityDatas", s.Inputs.RealityDatas)
}
