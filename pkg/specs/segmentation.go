package specs

// --- Segmentation 2D ---

// Segmentation2DInputs identify the photos and detector for 2D
// segmentation.
type Segmentation2DInputs struct {
	// Photos is the ContextScene reality-data id of the photo collection.
	// Required.
	Photos string `json:"photos"`

	// PhotoSegmentationDetector is the detector reality-data id. Required.
	PhotoSegmentationDetector string `json:"photoSegmentationDetector"`
}

// Segmentation2DOutputKind enumerates the outputs.
type Segmentation2DOutputKind string

const (
	Segmentation2DOutputSegmentation2D  Segmentation2DOutputKind = "segmentation2D"
	Segmentation2DOutputSegmentedPhotos Segmentation2DOutputKind = "segmentedPhotos"
)

var segmentation2DOutputKinds = []Segmentation2DOutputKind{
	Segmentation2DOutputSegmentation2D,
	Segmentation2DOutputSegmentedPhotos,
}

// Segmentation2DOutputs is the realized output set.
type Segmentation2DOutputs struct {
	Segmentation2D  string `json:"segmentation2D,omitempty"`
	SegmentedPhotos string `json:"segmentedPhotos,omitempty"`
}

// Segmentation2DSpecificationsCreate is the submit-time form.
type Segmentation2DSpecificationsCreate struct {
	Inputs  Segmentation2DInputs       `json:"inputs"`
	Outputs []Segmentation2DOutputKind `json:"outputs"`
}

func (Segmentation2DSpecificationsCreate) JobType() JobType { return Segmentation2D }

func (s Segmentation2DSpecificationsCreate) Validate() error {
	if err := required("photos", s.Inputs.Photos); err != nil {
		return err
	}
	if err := required("photoSegmentationDetector", s.Inputs.PhotoSegmentationDetector); err != nil {
		return err
	}
	return checkOutputs(Segmentation2D, s.Outputs, segmentation2DOutputKinds)
}

// Segmentation2DSpecifications is the realized form.
type Segmentation2DSpecifications struct {
	Inputs  Segmentation2DInputs  `json:"inputs"`
	Outputs Segmentation2DOutputs `json:"outputs"`
}

func (*Segmentation2DSpecifications) JobType() JobType { return Segmentation2D }

func (s *Segmentation2DSpecifications) Validate() error {
	if err := required("photos", s.Inputs.Photos); err != nil {
		return err
	}
	return required("photoSegmentationDetector", s.Inputs.PhotoSegmentationDetector)
}

// --- Segmentation 3D ---

// Segmentation3DInputs identify the geometry and classification source.
// Classification can start from a point-cloud detector or reuse a previous
// segmentation result.
type Segmentation3DInputs struct {
	PointClouds []string `json:"pointClouds,omitempty"`
	Meshes      []string `json:"meshes,omitempty"`

	PointCloudSegmentationDetector string `json:"pointCloudSegmentationDetector,omitempty"`

	// Segmentation3D reuses a previous segmentation instead of running one.
	Segmentation3D string `json:"segmentation3D,omitempty"`
}

// Segmentation3DOutputKind enumerates the outputs.
type Segmentation3DOutputKind string

const (
	Segmentation3DOutputSegmentation3D            Segmentation3DOutputKind = "segmentation3D"
	Segmentation3DOutputSegmentedPointCloud       Segmentation3DOutputKind = "segmentedPointCloud"
	Segmentation3DOutputExportedSegmentation3DLAS Segmentation3DOutputKind = "exportedSegmentation3DLAS"
	Segmentation3DOutputExportedSegmentation3DLAZ Segmentation3DOutputKind = "exportedSegmentation3DLAZ"
	Segmentation3DOutputObjects3D                 Segmentation3DOutputKind = "objects3D"
	Segmentation3DOutputExportedObjects3DDGN      Segmentation3DOutputKind = "exportedObjects3DDGN"
	Segmentation3DOutputExportedObjects3DCesium   Segmentation3DOutputKind = "exportedObjects3DCesium"
	Segmentation3DOutputExportedLocations3DSHP    Segmentation3DOutputKind = "exportedLocations3DSHP"
)

var segmentation3DOutputKinds = []Segmentation3DOutputKind{
	Segmentation3DOutputSegmentation3D,
	Segmentation3DOutputSegmentedPointCloud,
	Segmentation3DOutputExportedSegmentation3DLAS,
	Segmentation3DOutputExportedSegmentation3DLAZ,
	Segmentation3DOutputObjects3D,
	Segmentation3DOutputExportedObjects3DDGN,
	Segmentation3DOutputExportedObjects3DCesium,
	Segmentation3DOutputExportedLocations3DSHP,
}

// Segmentation3DOutputs is the realized output set.
type Segmentation3DOutputs struct {
	Segmentation3D            string `json:"segmentation3D,omitempty"`
	SegmentedPointCloud       string `json:"segmentedPointCloud,omitempty"`
	ExportedSegmentation3DLAS string `json:"exportedSegmentation3DLAS,omitempty"`
	ExportedSegmentation3DLAZ string `json:"exportedSegmentation3DLAZ,omitempty"`
	Objects3D                 string `json:"objects3D,omitempty"`
	ExportedObjects3DDGN      string `json:"exportedObjects3DDGN,omitempty"`
	ExportedObjects3DCesium   string `json:"exportedObjects3DCesium,omitempty"`
	ExportedLocations3DSHP    string `json:"exportedLocations3DSHP,omitempty"`
}

// Segmentation3DOptions tune 3D segmentation.
type Segmentation3DOptions struct {
	SRS string `json:"srs,omitempty"`

	// SaveConfidence writes per-point confidence into exported clouds.
	SaveConfidence bool `json:"saveConfidence,omitempty"`
}

func (i Segmentation3DInputs) validate() error {
	if len(i.PointClouds) == 0 && len(i.Meshes) == 0 {
		return missingInput("pointClouds or meshes")
	}
	if i.PointCloudSegmentationDetector == "" && i.Segmentation3D == "" {
		return missingInput("pointCloudSegmentationDetector or segmentation3D")
	}
	return nil
}

// Segmentation3DSpecificationsCreate is the submit-time form.
type Segmentation3DSpecificationsCreate struct {
	Inputs  Segmentation3DInputs       `json:"inputs"`
	Outputs []Segmentation3DOutputKind `json:"outputs"`
	Options *Segmentation3DOptions     `json:"options,omitempty"`
}

func (Segmentation3DSpecificationsCreate) JobType() JobType { return Segmentation3D }

func (s Segmentation3DSpecificationsCreate) Validate() error {
	if err := s.Inputs.validate(); err != nil {
		return err
	}
	return checkOutputs(Segmentation3D, s.Outputs, segmentation3DOutputKinds)
}

// Segmentation3DSpecifications is the realized form.
type Segmentation3DSpecifications struct {
	Inputs  Segmentation3DInputs   `json:"inputs"`
	Outputs Segmentation3DOutputs  `json:"outputs"`
	Options *Segmentation3DOptions `json:"options,omitempty"`
}

func (*Segmentation3DSpecifications) JobType() JobType { return Segmentation3D }

func (s *Segmentation3DSpecifications) Validate() error {
	return s.Inputs.validate()
}

// --- Segmentation ortho ---

// SegmentationOrthoInputs identify the orthophoto and detector.
type SegmentationOrthoInputs struct {
	// Orthophoto is the orthophoto ContextScene reality-data id. Required.
	Orthophoto string `json:"orthophoto"`

	// OrthophotoSegmentationDetector is the detector reality-data id.
	// Required.
	OrthophotoSegmentationDetector string `json:"orthophotoSegmentationDetector"`
}

// SegmentationOrthoOutputKind enumerates the outputs.
type SegmentationOrthoOutputKind string

const (
	SegmentationOrthoOutputSegmentation2D        SegmentationOrthoOutputKind = "segmentation2D"
	SegmentationOrthoOutputSegmentedPhotos       SegmentationOrthoOutputKind = "segmentedPhotos"
	SegmentationOrthoOutputPolygons2D            SegmentationOrthoOutputKind = "polygons2D"
	SegmentationOrthoOutputExportedPolygons2DSHP SegmentationOrthoOutputKind = "exportedPolygons2DSHP"
	SegmentationOrthoOutputLines2D               SegmentationOrthoOutputKind = "lines2D"
	SegmentationOrthoOutputExportedLines2DSHP    SegmentationOrthoOutputKind = "exportedLines2DSHP"
	SegmentationOrthoOutputExportedLines2DDGN    SegmentationOrthoOutputKind = "exportedLines2DDGN"
)

var segmentationOrthoOutputKinds = []SegmentationOrthoOutputKind{
	SegmentationOrthoOutputSegmentation2D,
	SegmentationOrthoOutputSegmentedPhotos,
	SegmentationOrthoOutputPolygons2D,
	SegmentationOrthoOutputExportedPolygons2DSHP,
	SegmentationOrthoOutputLines2D,
	SegmentationOrthoOutputExportedLines2DSHP,
	SegmentationOrthoOutputExportedLines2DDGN,
}

// SegmentationOrthoOutputs is the realized output set.
type SegmentationOrthoOutputs struct {
	Segmentation2D        string `json:"segmentation2D,omitempty"`
	SegmentedPhotos       string `json:"segmentedPhotos,omitempty"`
	Polygons2D            string `json:"polygons2D,omitempty"`
	ExportedPolygons2DSHP string `json:"exportedPolygons2DSHP,omitempty"`
	Lines2D               string `json:"lines2D,omitempty"`
	ExportedLines2DSHP    string `json:"exportedLines2DSHP,omitempty"`
	ExportedLines2DDGN    string `json:"exportedLines2DDGN,omitempty"`
}

// SegmentationOrthoSpecificationsCreate is the submit-time form.
type SegmentationOrthoSpecificationsCreate struct {
	Inputs  SegmentationOrthoInputs       `json:"inputs"`
	Outputs []SegmentationOrthoOutputKind `json:"outputs"`
}

func (SegmentationOrthoSpecificationsCreate) JobType() JobType { return SegmentationOrtho }

func (s SegmentationOrthoSpecificationsCreate) Validate() error {
	if err := required("orthophoto", s.Inputs.Orthophoto); err != nil {
		return err
	}
	if err := required("orthophotoSegmentationDetector", s.Inputs.OrthophotoSegmentationDetector); err != nil {
		return err
	}
	return checkOutputs(SegmentationOrtho, s.Outputs, segmentationOrthoOutputKinds)
}

// SegmentationOrthoSpecifications is the realized form.
type SegmentationOrthoSpecifications struct {
	Inputs  SegmentationOrthoInputs  `json:"inputs"`
	Outputs SegmentationOrthoOutputs `json:"outputs"`
}

func (*SegmentationOrthoSpecifications) JobType() JobType { return SegmentationOrtho }

func (s *SegmentationOrthoSpecifications) Validate() error {
	if err := required("orthophoto", s.Inputs.Orthophoto); err != nil {
		return err
	}
	return required("orthophotoSegmentationDetector", s.Inputs.OrthophotoSegmentationDetector)
}
