package specs

// --- Training ---

// TrainingInputs identify the annotated scene to train a detector from.
type TrainingInputs struct {
	// Scene is the annotated ContextScene reality-data id. Required.
	Scene string `json:"scene"`

	// Detector resumes training from an existing detector.
	Detector string `json:"detector,omitempty"`
}

// TrainingOutputKind enumerates the outputs.
type TrainingOutputKind string

const (
	TrainingOutputContextDetector TrainingOutputKind = "contextDetector"
)

var trainingOutputKinds = []TrainingOutputKind{
	TrainingOutputContextDetector,
}

// TrainingOutputs is the realized output set.
type TrainingOutputs struct {
	ContextDetector string `json:"contextDetector,omitempty"`
}

// TrainingOptions tune detector training.
type TrainingOptions struct {
	// Epochs is the number of training epochs; 0 means service default.
	Epochs int `json:"epochs,omitempty"`

	// MaxTrainingSplit is the fraction of annotations used for training,
	// the remainder being held out for validation.
	MaxTrainingSplit float64 `json:"maxTrainingSplit,omitempty"`
}

// TrainingSpecificationsCreate is the submit-time form.
type TrainingSpecificationsCreate struct {
	Inputs  TrainingInputs       `json:"inputs"`
	Outputs []TrainingOutputKind `json:"outputs"`
	Options *TrainingOptions     `json:"options,omitempty"`
}

func (TrainingSpecificationsCreate) JobType() JobType { return Training }

func (s TrainingSpecificationsCreate) Validate() error {
	if err := required("scene", s.Inputs.Scene); err != nil {
		return err
	}
	return checkOutputs(Training, s.Outputs, trainingOutputKinds)
}

// TrainingSpecifications is the realized form.
type TrainingSpecifications struct {
	Inputs  TrainingInputs   `json:"inputs"`
	Outputs TrainingOutputs  `json:"outputs"`
	Options *TrainingOptions `json:"options,omitempty"`
}

func (*TrainingSpecifications) JobType() JobType { return Training }

func (s *TrainingSpecifications) Validate() error {
	return required("scene", s.Inputs.Scene)
}

// --- Evaluation ---

// EvaluationInputs identify the ground truth and prediction scenes to
// compare.
type EvaluationInputs struct {
	// Reference is the ground-truth ContextScene reality-data id. Required.
	Reference string `json:"reference"`

	// Predicted is the predicted ContextScene reality-data id. Required.
	Predicted string `json:"predicted"`
}

// EvaluationOutputKind enumerates the outputs.
type EvaluationOutputKind string

const (
	EvaluationOutputReport EvaluationOutputKind = "report"
)

var evaluationOutputKinds = []EvaluationOutputKind{
	EvaluationOutputReport,
}

// EvaluationOutputs is the realized output set.
type EvaluationOutputs struct {
	Report string `json:"report,omitempty"`
}

// EvaluationOptions tune the comparison.
type EvaluationOptions struct {
	// Tolerance is the matching tolerance in meters.
	Tolerance float64 `json:"tolerance,omitempty"`
}

// EvaluationSpecificationsCreate is the submit-time form.
type EvaluationSpecificationsCreate struct {
	Inputs  EvaluationInputs       `json:"inputs"`
	Outputs []EvaluationOutputKind `json:"outputs"`
	Options *EvaluationOptions     `json:"options,omitempty"`
}

func (EvaluationSpecificationsCreate) JobType() JobType { return Evaluation }

func (s EvaluationSpecificationsCreate) Validate() error {
	if err := required("reference", s.Inputs.Reference); err != nil {
		return err
	}
	if err := required("predicted", s.Inputs.Predicted); err != nil {
		return err
	}
	return checkOutputs(Evaluation, s.Outputs, evaluationOutputKinds)
}

// EvaluationSpecifications is the realized form.
type EvaluationSpecifications struct {
	Inputs  EvaluationInputs   `json:"inputs"`
	Outputs EvaluationOutputs  `json:"outputs"`
	Options *EvaluationOptions `json:"options,omitempty"`
}

func (*EvaluationSpecifications) JobType() JobType { return Evaluation }

func (s *EvaluationSpecifications) Validate() error {
	if err := required("reference", s.Inputs.Reference); err != nil {
		return err
	}
	return required("predicted", s.Inputs.Predicted)
}
