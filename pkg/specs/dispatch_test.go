package specs

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/realitycloud/realitycloud/pkg/apierr"
)

// TestRoundTrip verifies Unmarshal(Marshal(x)) == x for a representative
// instance of every variant.
func TestRoundTrip(t *testing.T) {
	instances := []Specifications{
		&CalibrationSpecifications{
			Inputs:  CalibrationInputs{Scene: "scene-1"},
			Outputs: CalibrationOutputs{Calibration: "cal-1", Report: "rep-1"},
			Options: &CalibrationOptions{KeyPointsDensity: KeyPointsDensityHigh},
		},
		&TilingSpecifications{
			Inputs:  TilingInputs{Scene: "scene-1"},
			Outputs: TilingOutputs{ReferenceModel: "rm-1"},
			Options: &TilingOptions{SRS: "EPSG:4978"},
		},
		&ReconstructionSpecifications{
			Inputs:  ReconstructionInputs{Scene: "scene-1", ReferenceModel: "rm-0"},
			Outputs: ReconstructionOutputs{ReferenceModel: "rm-1"},
		},
		&ProductionSpecifications{
			Inputs:  ProductionInputs{Scene: "scene-1", ReferenceModel: "rm-1"},
			Outputs: ProductionOutputs{Cesium3DTiles: "tiles-1", OrthophotoDSM: "dsm-1"},
			Options: &ProductionOptions{ColorCorrection: ColorCorrectionStandard},
		},
		&FillImagePropertiesSpecifications{
			Inputs:  FillImagePropertiesInputs{ImageCollections: []string{"ic1", "ic2"}},
			Outputs: FillImagePropertiesOutputs{Scene: "scene-1"},
			Options: &FillImagePropertiesOptions{RecursiveImageCollections: true},
		},
		&ImportPointCloudSpecifications{
			Inputs:  ImportPointCloudInputs{PointClouds: []string{"pc1"}},
			Outputs: ImportPointCloudOutputs{Scene: "scene-1"},
		},
		&TouchUpImportSpecifications{
			Inputs: TouchUpImportInputs{Scene: "s", ReferenceModel: "rm", TouchUpData: "td"},
		},
		&TouchUpExportSpecifications{
			Inputs:  TouchUpExportInputs{ReferenceModel: "rm", Tiles: []string{"t1"}},
			Outputs: TouchUpExportOutputs{TouchUpData: "td-1"},
		},
		&ConstraintsSpecifications{
			Inputs: ConstraintsInputs{Scene: "s", Constraints: []string{"c1"}},
		},
		&WaterConstraintsSpecifications{
			Inputs:  WaterConstraintsInputs{Scene: "s", ReferenceModel: "rm"},
			Options: &WaterConstraintsOptions{Resolution: 0.5},
		},
		&GaussianSplatsSpecifications{
			Inputs:  GaussianSplatsInputs{Scene: "s"},
			Outputs: GaussianSplatsOutputs{GaussianSplats: "gs-1"},
			Options: &GaussianSplatsOptions{Format: GaussianSplatsFormatSPZ, Iterations: 30000},
		},
		&ConversionSpecifications{
			Inputs:  ConversionInputs{RealityDatas: []string{"rd1", "rd2"}},
			Outputs: ConversionOutputs{OPC: "opc-1"},
			Options: &ConversionOptions{Merge: true},
		},
		&Objects2DSpecifications{
			Inputs:  Objects2DInputs{Photos: "p", PhotoObjectDetector: "d"},
			Outputs: Objects2DOutputs{Objects2D: "o2d-1"},
		},
		&Objects3DSpecifications{
			Inputs:  Objects3DInputs{PointClouds: []string{"pc1"}, Objects2D: "o2d-1"},
			Outputs: Objects3DOutputs{Objects3D: "o3d-1", ExportedObjects3DDGN: "dgn-1"},
			Options: &Objects3DOptions{MinPhotos: 3, MaxDist: 10.5},
		},
		&Segmentation2DSpecifications{
			Inputs: Segmentation2DInputs{Photos: "p", PhotoSegmentationDetector: "d"},
		},
		&Segmentation3DSpecifications{
			Inputs:  Segmentation3DInputs{PointClouds: []string{"pc1"}, PointCloudSegmentationDetector: "d"},
			Outputs: Segmentation3DOutputs{Segmentation3D: "s3d-1"},
			Options: &Segmentation3DOptions{SaveConfidence: true},
		},
		&SegmentationOrthoSpecifications{
			Inputs:  SegmentationOrthoInputs{Orthophoto: "o", OrthophotoSegmentationDetector: "d"},
			Outputs: SegmentationOrthoOutputs{Polygons2D: "poly-1"},
		},
		&ChangeDetectionSpecifications{
			Inputs:  ChangeDetectionInputs{PointClouds1: []string{"a"}, PointClouds2: []string{"b"}},
			Options: &ChangeDetectionOptions{Resolution: 0.1, MinPoints: 100},
		},
		&TrainingSpecifications{
			Inputs:  TrainingInputs{Scene: "s"},
			Outputs: TrainingOutputs{ContextDetector: "det-1"},
			Options: &TrainingOptions{Epochs: 50},
		},
		&EvaluationSpecifications{
			Inputs:  EvaluationInputs{Reference: "gt", Predicted: "pred"},
			Outputs: EvaluationOutputs{Report: "rep-1"},
		},
	}

	seen := make(map[JobType]bool)
	for _, spec := range instances {
		seen[spec.JobType()] = true

		raw, err := Marshal(spec)
		if err != nil {
			t.Fatalf("%s: Marshal: %v", spec.JobType(), err)
		}

		back, err := Unmarshal(spec.JobType(), raw)
		if err != nil {
			t.Fatalf("%s: Unmarshal: %v", spec.JobType(), err)
		}

		if !reflect.DeepEqual(spec, back) {
			t.Errorf("%s: round trip mismatch\n got %#v\nwant %#v", spec.JobType(), back, spec)
		}
	}

	// Every recognized job type must be covered above.
	for _, jt := range Types() {
		if !seen[jt] {
			t.Errorf("no round-trip instance for %s", jt)
		}
	}
}

func TestServiceMapping(t *testing.T) {
	modeling := []JobType{
		Calibration, Tiling, Reconstruction, Production, FillImageProperties,
		ImportPointCloud, TouchUpImport, TouchUpExport, Constraints,
		WaterConstraints, GaussianSplats, Conversion,
	}
	analysis := []JobType{
		Objects2D, Objects3D, Segmentation2D, Segmentation3D,
		SegmentationOrtho, ChangeDetection, Training, Evaluation,
	}

	for _, jt := range modeling {
		if svc, err := ServiceFor(jt); err != nil || svc != ServiceModeling {
			t.Errorf("ServiceFor(%s) = %s, %v; want %s", jt, svc, err, ServiceModeling)
		}
	}
	for _, jt := range analysis {
		if svc, err := ServiceFor(jt); err != nil || svc != ServiceAnalysis {
			t.Errorf("ServiceFor(%s) = %s, %v; want %s", jt, svc, err, ServiceAnalysis)
		}
	}
	if len(modeling)+len(analysis) != len(Types()) {
		t.Errorf("mapping covers %d types, registry has %d", len(modeling)+len(analysis), len(Types()))
	}

	if _, err := ServiceFor("Extrusion"); err == nil {
		t.Error("expected error for unknown job type")
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	_, err := Unmarshal("Extrusion", json.RawMessage(`{}`))
	if apierr.CodeOf(err) != apierr.CodeSpecSchema {
		t.Errorf("err = %v, want SpecSchemaError", err)
	}
}

func TestUnmarshalMissingRequiredInput(t *testing.T) {
	_, err := Unmarshal(Calibration, json.RawMessage(`{"inputs":{},"outputs":{}}`))
	if apierr.CodeOf(err) != apierr.CodeSpecSchema {
		t.Errorf("err = %v, want SpecSchemaError", err)
	}
}

func TestUnmarshalRejectsUnknownEnum(t *testing.T) {
	raw := json.RawMessage(`{"inputs":{"scene":"s"},"outputs":{},"options":{"keyPointsDensity":"ultra"}}`)
	_, err := Unmarshal(Calibration, raw)
	if apierr.CodeOf(err) != apierr.CodeSpecSchema {
		t.Errorf("err = %v, want SpecSchemaError", err)
	}
}

// TestRealizedDecode mirrors the shape of a service response body.
func TestRealizedDecode(t *testing.T) {
	raw := json.RawMessage(`{"inputs":{"pointClouds":["x"],"pointCloudSegmentationDetector":"det"},"outputs":{"segmentation3D":"y"}}`)

	spec, err := Unmarshal(Segmentation3D, raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	s3d, ok := spec.(*Segmentation3DSpecifications)
	if !ok {
		t.Fatalf("got %T, want *Segmentation3DSpecifications", spec)
	}
	if s3d.Outputs.Segmentation3D != "y" {
		t.Errorf("outputs.segmentation3D = %q, want y", s3d.Outputs.Segmentation3D)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		create SpecificationsCreate
		ok     bool
	}{
		{
			name: "valid fill image properties",
			create: FillImagePropertiesSpecificationsCreate{
				Inputs:  FillImagePropertiesInputs{ImageCollections: []string{"ic1"}},
				Outputs: []FillImagePropertiesOutputKind{FillImagePropertiesOutputScene},
			},
			ok: true,
		},
		{
			name: "no outputs requested",
			create: FillImagePropertiesSpecificationsCreate{
				Inputs: FillImagePropertiesInputs{ImageCollections: []string{"ic1"}},
			},
			ok: false,
		},
		{
			name: "duplicate output",
			create: ProductionSpecificationsCreate{
				Inputs:  ProductionInputs{Scene: "s", ReferenceModel: "rm"},
				Outputs: []ProductionOutputKind{ProductionOutputOBJ, ProductionOutputOBJ},
			},
			ok: false,
		},
		{
			name: "unknown output kind",
			create: ProductionSpecificationsCreate{
				Inputs:  ProductionInputs{Scene: "s", ReferenceModel: "rm"},
				Outputs: []ProductionOutputKind{"hologram"},
			},
			ok: false,
		},
		{
			name: "objects3d without detection source",
			create: Objects3DSpecificationsCreate{
				Inputs:  Objects3DInputs{PointClouds: []string{"pc"}},
				Outputs: []Objects3DOutputKind{Objects3DOutputObjects3D},
			},
			ok: false,
		},
		{
			name: "change detection mixed epochs",
			create: ChangeDetectionSpecificationsCreate{
				Inputs:  ChangeDetectionInputs{PointClouds1: []string{"a"}, Meshes2: []string{"b"}},
				Outputs: []ChangeDetectionOutputKind{ChangeDetectionOutputObjects3D},
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				var apiErr *apierr.Error
				if !errors.As(err, &apiErr) || apiErr.Code != apierr.CodeSpecSchema {
					t.Errorf("err = %v, want SpecSchemaError", err)
				}
			}
		})
	}
}

// TestCreateWireShape pins the submit-time outputs encoding to a list of
// kind strings.
func TestCreateWireShape(t *testing.T) {
	create := FillImagePropertiesSpecificationsCreate{
		Inputs:  FillImagePropertiesInputs{ImageCollections: []string{"ic1"}},
		Outputs: []FillImagePropertiesOutputKind{FillImagePropertiesOutputScene},
	}

	raw, err := Marshal(create)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var wire struct {
		Inputs  map[string]interface{} `json:"inputs"`
		Outputs []string               `json:"outputs"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("decode wire: %v", err)
	}
	if len(wire.Outputs) != 1 || wire.Outputs[0] != "scene" {
		t.Errorf("outputs = %v, want [scene]", wire.Outputs)
	}
}

// TestUnmarshalCreate round-trips a submit-time form through the
// create dispatcher.
func TestUnmarshalCreate(t *testing.T) {
	raw := json.RawMessage(`{
		"inputs": {"imageCollections": ["ic1"]},
		"outputs": ["scene"]
	}`)

	spec, err := UnmarshalCreate(FillImageProperties, raw)
	if err != nil {
		t.Fatalf("UnmarshalCreate: %v", err)
	}
	fill, ok := spec.(FillImagePropertiesSpecificationsCreate)
	if !ok {
		t.Fatalf("spec = %T", spec)
	}
	if len(fill.Inputs.ImageCollections) != 1 || fill.Outputs[0] != FillImagePropertiesOutputScene {
		t.Errorf("spec = %+v", fill)
	}

	if _, err := UnmarshalCreate("Mystery", raw); err == nil {
		t.Error("unknown type accepted")
	}
	if _, err := UnmarshalCreate(FillImageProperties, json.RawMessage(`{"outputs":["scene"]}`)); err == nil {
		t.Error("missing required input accepted")
	}
}
