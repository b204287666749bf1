package specs

// ImportPointCloudInputs identify the point clouds to register in a scene.
type ImportPointCloudInputs struct {
	// PointClouds are the reality-data ids of the point-cloud files to
	// import. Required.
	PointClouds []string `json:"pointClouds"`

	// Scene is an existing ContextScene to extend.
	Scene string `json:"scene,omitempty"`
}

// ImportPointCloudOutputKind enumerates the outputs.
type ImportPointCloudOutputKind string

const (
	ImportPointCloudOutputScene ImportPointCloudOutputKind = "scene"
)

var importPointCloudOutputKinds = []ImportPointCloudOutputKind{
	ImportPointCloudOutputScene,
}

// ImportPointCloudOutputs is the realized output set.
type ImportPointCloudOutputs struct {
	Scene string `json:"scene,omitempty"`
}

// ImportPointCloudOptions tune the import.
type ImportPointCloudOptions struct {
	// SRS overrides the spatial reference system declared in the files.
	SRS string `json:"srs,omitempty"`
}

// ImportPointCloudSpecificationsCreate is the submit-time form.
type ImportPointCloudSpecificationsCreate struct {
	Inputs  ImportPointCloudInputs       `json:"inputs"`
	Outputs []ImportPointCloudOutputKind `json:"outputs"`
	Options *ImportPointCloudOptions     `json:"options,omitempty"`
}

func (ImportPointCloudSpecificationsCreate) JobType() JobType { return ImportPointCloud }

func (s ImportPointCloudSpecificationsCreate) Validate() error {
	if err := requiredList("pointClouds", s.Inputs.PointClouds); err != nil {
		return err
	}
	return checkOutputs(ImportPointCloud, s.Outputs, importPointCloudOutputKinds)
}

// ImportPointCloudSpecifications is the realized form.
type ImportPointCloudSpecifications struct {
	Inputs  ImportPointCloudInputs   `json:"inputs"`
	Outputs ImportPointCloudOutputs  `json:"outputs"`
	Options *ImportPointCloudOptions `json:"options,omitempty"`
}

func (*ImportPointCloudSpecifications) JobType() JobType { return ImportPointCloud }

func (s *ImportPointCloudSpecifications) Validate() error {
	return requiredList("pointClouds", s.Inputs.PointClouds)
}
