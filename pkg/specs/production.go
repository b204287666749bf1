package specs

// ProductionInputs identify the scene and reference model to export from.
type ProductionInputs struct {
	// Scene is the calibrated ContextScene reality-data id. Required.
	Scene string `json:"scene"`

	// ReferenceModel is the reconstructed model reality-data id. Required.
	ReferenceModel string `json:"referenceModel"`
}

// ProductionOutputKind enumerates the export formats a production job may
// request.
type ProductionOutputKind string

const (
	ProductionOutputCesium3DTiles ProductionOutputKind = "cesium3DTiles"
	ProductionOutputThreeMX       ProductionOutputKind = "threeMX"
	ProductionOutputThreeSM       ProductionOutputKind = "threeSM"
	ProductionOutputOBJ           ProductionOutputKind = "obj"
	ProductionOutputFBX           ProductionOutputKind = "fbx"
	ProductionOutputLAS           ProductionOutputKind = "las"
	ProductionOutputLAZ           ProductionOutputKind = "laz"
	ProductionOutputPLY           ProductionOutputKind = "ply"
	ProductionOutputOPC           ProductionOutputKind = "opc"
	ProductionOutputPOD           ProductionOutputKind = "pod"
	ProductionOutputDGN           ProductionOutputKind = "dgn"
	ProductionOutputOrthophoto    ProductionOutputKind = "orthophoto"
	ProductionOutputOrthophotoDSM ProductionOutputKind = "orthophotoDSM"
)

var productionOutputKinds = []ProductionOutputKind{
	ProductionOutputCesium3DTiles,
	ProductionOutputThreeMX,
	ProductionOutputThreeSM,
	ProductionOutputOBJ,
	ProductionOutputFBX,
	ProductionOutputLAS,
	ProductionOutputLAZ,
	ProductionOutputPLY,
	ProductionOutputOPC,
	ProductionOutputPOD,
	ProductionOutputDGN,
	ProductionOutputOrthophoto,
	ProductionOutputOrthophotoDSM,
}

// ProductionOutputs is the realized output set; each field holds the
// reality-data id of a produced export.
type ProductionOutputs struct {
	Cesium3DTiles string `json:"cesium3DTiles,omitempty"`
	ThreeMX       string `json:"threeMX,omitempty"`
	ThreeSM       string `json:"threeSM,omitempty"`
	OBJ           string `json:"obj,omitempty"`
	FBX           string `json:"fbx,omitempty"`
	LAS           string `json:"las,omitempty"`
	LAZ           string `json:"laz,omitempty"`
	PLY           string `json:"ply,omitempty"`
	OPC           string `json:"opc,omitempty"`
	POD           string `json:"pod,omitempty"`
	DGN           string `json:"dgn,omitempty"`
	Orthophoto    string `json:"orthophoto,omitempty"`
	OrthophotoDSM string `json:"orthophotoDSM,omitempty"`
}

// TextureColorSource values accepted by ProductionOptions.
const (
	TextureColorSourceVisible    = "visible"
	TextureColorSourceThermal    = "thermal"
	TextureColorSourceResolution = "resolution"
)

// ColorCorrection values accepted by ProductionOptions.
const (
	ColorCorrectionNone      = "none"
	ColorCorrectionStandard  = "standard"
	ColorCorrectionBlockWise = "blockWise"
)

// ProductionOptions tune the export engine.
type ProductionOptions struct {
	SRS                string  `json:"srs,omitempty"`
	TextureColorSource string  `json:"textureColorSource,omitempty"`
	ColorCorrection    string  `json:"colorCorrection,omitempty"`
	OrthoResolution    float64 `json:"orthoResolution,omitempty"`
}

func (o *ProductionOptions) validate() error {
	if o == nil {
		return nil
	}
	if err := checkEnum("textureColorSource", o.TextureColorSource,
		[]string{TextureColorSourceVisible, TextureColorSourceThermal, TextureColorSourceResolution}); err != nil {
		return err
	}
	return checkEnum("colorCorrection", o.ColorCorrection,
		[]string{ColorCorrectionNone, ColorCorrectionStandard, ColorCorrectionBlockWise})
}

// ProductionSpecificationsCreate is the submit-time form.
type ProductionSpecificationsCreate struct {
	Inputs  ProductionInputs       `json:"inputs"`
	Outputs []ProductionOutputKind `json:"outputs"`
	Options *ProductionOptions     `json:"options,omitempty"`
}

func (ProductionSpecificationsCreate) JobType() JobType { return Production }

func (s ProductionSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := required("referenceModel", s.Inputs.ReferenceModel); err != nil {
		return err
	}
	if err := checkOutputs(Production, s.Outputs, productionOutputKinds); err != nil {
		return err
	}
	return s.Options.validate()
}

// ProductionSpecifications is the realized form.
type ProductionSpecifications struct {
	Inputs  ProductionInputs   `json:"inputs"`
	Outputs ProductionOutputs  `json:"outputs"`
	Options *ProductionOptions `json:"options,omitempty"`
}

func (*ProductionSpecifications) JobType() JobType { return Production }

func (s *ProductionSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := required("referenceModel", s.Inputs.ReferenceModel); err != nil {
		return err
	}
	return s.Options.validate()
}
