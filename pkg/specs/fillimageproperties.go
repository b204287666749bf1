package specs

// FillImagePropertiesInputs identify the image collections to scan.
type FillImagePropertiesInputs struct {
	// ImageCollections are the reality-data ids of the image collections
	// whose embedded properties (GPS, orientation) should be extracted.
	// Required.
	ImageCollections []string `json:"imageCollections"`

	// Scene is an existing ContextScene to complete instead of creating
	// a fresh one.
	Scene string `json:"scene,omitempty"`
}

// FillImagePropertiesOutputKind enumerates the outputs.
type FillImagePropertiesOutputKind string

const (
	FillImagePropertiesOutputScene FillImagePropertiesOutputKind = "scene"
)

var fillImagePropertiesOutputKinds = []FillImagePropertiesOutputKind{
	FillImagePropertiesOutputScene,
}

// FillImagePropertiesOutputs is the realized output set.
type FillImagePropertiesOutputs struct {
	Scene string `json:"scene,omitempty"`
}

// AltitudeReference values accepted by FillImagePropertiesOptions.
const (
	AltitudeReferenceSeaLevel       = "seaLevel"
	AltitudeReferenceWGS84Ellipsoid = "wgs84Ellipsoid"
)

// FillImagePropertiesOptions tune property extraction.
type FillImagePropertiesOptions struct {
	// RecursiveImageCollections descends into sub-directories of each
	// image collection.
	RecursiveImageCollections bool `json:"recursiveImageCollections,omitempty"`

	AltitudeReference string `json:"altitudeReference,omitempty"`
}

func (o *FillImagePropertiesOptions) validate() error {
	if o == nil {
		return nil
	}
	return checkEnum("altitudeReference", o.AltitudeReference,
		[]string{AltitudeReferenceSeaLevel, AltitudeReferenceWGS84Ellipsoid})
}

// FillImagePropertiesSpecificationsCreate is the submit-time form.
type FillImagePropertiesSpecificationsCreate struct {
	Inputs  FillImagePropertiesInputs       `json:"inputs"`
	Outputs []FillImagePropertiesOutputKind `json:"outputs"`
	Options *FillImagePropertiesOptions     `json:"options,omitempty"`
}

func (FillImagePropertiesSpecificationsCreate) JobType() JobType { return FillImageProperties }

func (s FillImagePropertiesSpecificationsCreate) Validate() error {
	if err := requiredList("imageCollections", s.Inputs.ImageCollections); err != nil {
		return err
	}
	if err := checkOutputs(FillImageProperties, s.Outputs, fillImagePropertiesOutputKinds); err != nil {
		return err
	}
	return s.Options.validate()
}

// FillImagePropertiesSpecifications is the realized form.
type FillImagePropertiesSpecifications struct {
	Inputs  FillImagePropertiesInputs   `json:"inputs"`
	Outputs FillImagePropertiesOutputs  `json:"outputs"`
	Options *FillImagePropertiesOptions `json:"options,omitempty"`
}

func (*FillImagePropertiesSpecifications) JobType() JobType { return FillImageProperties }

func (s *FillImagePropertiesSpecifications) Validate() error {
	if err := requiredList("imageCollections", s.Inputs.ImageCollections); err != nil {
		return err
	}
	return s.Options.validate()
}
