package specs

// CalibrationInputs identify the scene to calibrate.
type CalibrationInputs struct {
	// Scene is the ContextScene reality-data id. Required.
	Scene string `json:"scene"`
}

// CalibrationOutputKind enumerates the outputs a calibration job may request.
type CalibrationOutputKind string

const (
	CalibrationOutputCalibration CalibrationOutputKind = "calibration"
	CalibrationOutputReport      CalibrationOutputKind = "report"
)

var calibrationOutputKinds = []CalibrationOutputKind{
	CalibrationOutputCalibration,
	CalibrationOutputReport,
}

// CalibrationOutputs is the realized output set; only produced outputs are
// populated.
type CalibrationOutputs struct {
	Calibration string `json:"calibration,omitempty"`
	Report      string `json:"report,omitempty"`
}

// KeyPointsDensity values accepted by CalibrationOptions.
const (
	KeyPointsDensityNormal = "normal"
	KeyPointsDensityHigh   = "high"
)

// CalibrationOptions tune the calibration engine. Absent fields mean
// service defaults.
type CalibrationOptions struct {
	KeyPointsDensity string `json:"keyPointsDensity,omitempty"`
	Preset           string `json:"preset,omitempty"`
}

func (o *CalibrationOptions) validate() error {
	if o == nil {
		return nil
	}
	return checkEnum("keyPointsDensity", o.KeyPointsDensity,
		[]string{KeyPointsDensityNormal, KeyPointsDensityHigh})
}

// CalibrationSpecificationsCreate is the submit-time form.
type CalibrationSpecificationsCreate struct {
	Inputs  CalibrationInputs       `json:"inputs"`
	Outputs []CalibrationOutputKind `json:"outputs"`
	Options *CalibrationOptions     `json:"options,omitempty"`
}

// JobType returns the discriminating type tag.
func (CalibrationSpecificationsCreate) JobType() JobType { return Calibration }

// Validate checks required inputs and enumerated fields.
func (s CalibrationSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	if err := checkOutputs(Calibration, s.Outputs, calibrationOutputKinds); err != nil {
		return err
	}
	return s.Options.validate()
}

// CalibrationSpecifications is the realized form returned by the service.
type CalibrationSpecifications struct {
	Inputs  CalibrationInputs   `json:"inputs"`
	Outputs CalibrationOutputs  `json:"outputs"`
	Options *CalibrationOptions `json:"options,omitempty"`
}

func (*CalibrationSpecifications) JobType() JobType { return Calibration }

func (s *CalibrationSpecifications) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	return s.Options.validate()
}
