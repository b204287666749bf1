package specs

// --- Touch-up import ---

// TouchUpImportInputs identify the edited tiles to merge back into a
// reference model.
type TouchUpImportInputs struct {
	// Scene is the ContextScene reality-data id. Required.
	Scene string `json:"scene"`

	// ReferenceModel is the model receiving the touch-up. Required.
	ReferenceModel string `json:"referenceModel"`

	// TouchUpData is the edited-tile reality-data id. Required.
	TouchUpData string `json:"touchUpData"`
}

// TouchUpImportOutputKind enumerates the outputs.
type TouchUpImportOutputKind string

const (
	TouchUpImportOutputReferenceModel TouchUpImportOutputKind = "referenceModel"
)

var touchUpImportOutputKinds = []TouchUpImportOutputKind{
	TouchUpImportOutputReferenceModel,
}

// TouchUpImportOutputs is the realized output set.
type TouchUpImportOutputs struct {
	ReferenceModel string `json:"referenceModel,omitempty"`
}

// TouchUpImportSpecificationsCreate is the submit-time form.
type TouchUpImportSpecificationsCreate struct {
	Inputs  TouchUpImportInputs       `json:"inputs"`
	Outputs []TouchUpImportOutputKind `json:"outputs"`
}

func (TouchUpImportSpecificationsCreate) JobType() JobType { return TouchUpImport }

func (s TouchUpImportSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := required("referenceModel", s.Inputs.ReferenceModel); err != nil {
		return err
	}
	if err := required("touchUpData", s.Inputs.TouchUpData); err != nil {
		return err
	}
	return checkOutputs(TouchUpImport, s.Outputs, touchUpImportOutputKinds)
}

// TouchUpImportSpecifications is the realized form.
type TouchUpImportSpecifications struct {
	Inputs  TouchUpImportInputs  `json:"inputs"`
	Outputs TouchUpImportOutputs `json:"outputs"`
}

func (*TouchUpImportSpecifications) JobType() JobType { return TouchUpImport }

func (s *TouchUpImportSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := required("referenceModel", s.Inputs.ReferenceModel); err != nil {
		return err
	}
	return required("touchUpData", s.Inputs.TouchUpData)
}

// --- Touch-up export ---

// TouchUpExportInputs identify the model tiles to export for editing.
type TouchUpExportInputs struct {
	// ReferenceModel is the model to export tiles from. Required.
	ReferenceModel string `json:"referenceModel"`

	// Tiles restricts the export to the named tiles; empty exports all.
	Tiles []string `json:"tiles,omitempty"`
}

// TouchUpExportOutputKind enumerates the outputs.
type TouchUpExportOutputKind string

const (
	TouchUpExportOutputTouchUpData TouchUpExportOutputKind = "touchUpData"
)

var touchUpExportOutputKinds = []TouchUpExportOutputKind{
	TouchUpExportOutputTouchUpData,
}

// TouchUpExportOutputs is the realized output set.
type TouchUpExportOutputs struct {
	TouchUpData string `json:"touchUpData,omitempty"`
}

// TouchUpExportSpecificationsCreate is the submit-time form.
type TouchUpExportSpecificationsCreate struct {
	Inputs  TouchUpExportInputs       `json:"inputs"`
	Outputs []TouchUpExportOutputKind `json:"outputs"`
}

func (TouchUpExportSpecificationsCreate) JobType() JobType { return TouchUpExport }

func (s TouchUpExportSpecificationsCreate) Validate() error {
	if err := required("referenceModel", s.Inputs.ReferenceModel); err != nil {
		return err
	}
	return checkOutputs(TouchUpExport, s.Outputs, touchUpExportOutputKinds)
}

// TouchUpExportSpecifications is the realized form.
type TouchUpExportSpecifications struct {
	Inputs  TouchUpExportInputs  `json:"inputs"`
	Outputs TouchUpExportOutputs `json:"outputs"`
}

func (*TouchUpExportSpecifications) JobType() JobType { return TouchUpExport }

func (s *TouchUpExportSpecifications) Validate() error {
	return required("referenceModel", s.Inputs.ReferenceModel)
}
