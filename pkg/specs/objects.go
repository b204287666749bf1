package specs

import "github.com/realitycloud/realitycloud/pkg/apierr"

// --- Objects 2D ---

// Objects2DInputs identify the photos and detector for 2D object detection.
type Objects2DInputs struct {
	// Photos is the ContextScene reality-data id of the photo collection.
	// Required.
	Photos string `json:"photos"`

	// PhotoObjectDetector is the detector reality-data id. Required.
	PhotoObjectDetector string `json:"photoObjectDetector"`
}

// Objects2DOutputKind enumerates the outputs.
type Objects2DOutputKind string

const (
	Objects2DOutputObjects2D Objects2DOutputKind = "objects2D"
)

var objects2DOutputKinds = []Objects2DOutputKind{
	Objects2DOutputObjects2D,
}

// Objects2DOutputs is the realized output set.
type Objects2DOutputs struct {
	Objects2D string `json:"objects2D,omitempty"`
}

// Objects2DSpecificationsCreate is the submit-time form.
type Objects2DSpecificationsCreate struct {
	Inputs  Objects2DInputs       `json:"inputs"`
	Outputs []Objects2DOutputKind `json:"outputs"`
}

func (Objects2DSpecificationsCreate) JobType() JobType { return Objects2D }

func (s Objects2DSpecificationsCreate) Validate() error {
	if err := required("photos", s.Inputs.Photos); err != nil {
		return err
	}
	if err := required("photoObjectDetector", s.Inputs.PhotoObjectDetector); err != nil {
		return err
	}
	return checkOutputs(Objects2D, s.Outputs, objects2DOutputKinds)
}

// Objects2DSpecifications is the realized form.
type Objects2DSpecifications struct {
	Inputs  Objects2DInputs  `json:"inputs"`
	Outputs Objects2DOutputs `json:"outputs"`
}

func (*Objects2DSpecifications) JobType() JobType { return Objects2D }

func (s *Objects2DSpecifications) Validate() error {
	if err := required("photos", s.Inputs.Photos); err != nil {
		return err
	}
	return required("photoObjectDetector", s.Inputs.PhotoObjectDetector)
}

// --- Objects 3D ---

// Objects3DInputs identify the geometry and detection source for 3D object
// detection. Detection can start from photos plus a detector, or from an
// existing 2D detection result.
type Objects3DInputs struct {
	PointClouds []string `json:"pointClouds,omitempty"`
	Meshes      []string `json:"meshes,omitempty"`

	Photos              string `json:"photos,omitempty"`
	PhotoObjectDetector string `json:"photoObjectDetector,omitempty"`

	// Objects2D reuses a previous 2D detection instead of running one.
	Objects2D string `json:"objects2D,omitempty"`
}

// Objects3DOutputKind enumerates the outputs.
type Objects3DOutputKind string

const (
	Objects3DOutputObjects2D               Objects3DOutputKind = "objects2D"
	Objects3DOutputObjects3D               Objects3DOutputKind = "objects3D"
	Objects3DOutputExportedObjects3DDGN    Objects3DOutputKind = "exportedObjects3DDGN"
	Objects3DOutputExportedObjects3DCesium Objects3DOutputKind = "exportedObjects3DCesium"
	Objects3DOutputExportedLocations3DSHP  Objects3DOutputKind = "exportedLocations3DSHP"
)

var objects3DOutputKinds = []Objects3DOutputKind{
	Objects3DOutputObjects2D,
	Objects3DOutputObjects3D,
	Objects3DOutputExportedObjects3DDGN,
	Objects3DOutputExportedObjects3DCesium,
	Objects3DOutputExportedLocations3DSHP,
}

// Objects3DOutputs is the realized output set.
type Objects3DOutputs struct {
	Objects2D               string `json:"objects2D,omitempty"`
	Objects3D               string `json:"objects3D,omitempty"`
	ExportedObjects3DDGN    string `json:"exportedObjects3DDGN,omitempty"`
	ExportedObjects3DCesium string `json:"exportedObjects3DCesium,omitempty"`
	ExportedLocations3DSHP  string `json:"exportedLocations3DSHP,omitempty"`
}

// Objects3DOptions tune 3D detection.
type Objects3DOptions struct {
	// UseTiePoints reuses calibration tie points to speed up projection.
	UseTiePoints bool `json:"useTiePoints,omitempty"`

	// MinPhotos is the minimum number of photos an object must appear in.
	MinPhotos int `json:"minPhotos,omitempty"`

	// MaxDist is the maximum projection distance in meters.
	MaxDist float64 `json:"maxDist,omitempty"`

	// ExportSRS is the spatial reference system for exports.
	ExportSRS string `json:"exportSrs,omitempty"`
}

func (i Objects3DInputs) validate() error {
	if len(i.PointClouds) == 0 && len(i.Meshes) == 0 {
		return missingInput("pointClouds or meshes")
	}
	if i.Objects2D == "" && i.PhotoObjectDetector == "" {
		return missingInput("photoObjectDetector or objects2D")
	}
	if i.PhotoObjectDetector != "" && i.Photos == "" {
		return apierr.New(apierr.CodeSpecSchema, "photos is required when photoObjectDetector is set")
	}
	return nil
}

// Objects3DSpecificationsCreate is the submit-time form.
type Objects3DSpecificationsCreate struct {
	Inputs  Objects3DInputs       `json:"inputs"`
	Outputs []Objects3DOutputKind `json:"outputs"`
	Options *Objects3DOptions     `json:"options,omitempty"`
}

func (Objects3DSpecificationsCreate) JobType() JobType { return Objects3D }

func (s Objects3DSpecificationsCreate) Validate() error {
	if err := s.Inputs.validate(); err != nil {
		return err
	}
	return checkOutputs(Objects3D, s.Outputs, objects3DOutputKinds)
}

// Objects3DSpecifications is the realized form.
type Objects3DSpecifications struct {
	Inputs  Objects3DInputs   `json:"inputs"`
	Outputs Objects3DOutputs  `json:"outputs"`
	Options *Objects3DOptions `json:"options,omitempty"`
}

func (*Objects3DSpecifications) JobType() JobType { return Objects3D }

func (s *Objects3DSpecifications) Validate() error {
	return s.Inputs.validate()
}
