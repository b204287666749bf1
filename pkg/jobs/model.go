// Package jobs submits and monitors reality-modeling and
// reality-analysis jobs. Service routing is derived from the job type;
// callers never name the engine themselves.
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/realitycloud/realitycloud/pkg/specs"
)

// State is the lifecycle state of a job.
type State string

const (
	StateQueued               State = "queued"
	StateActive               State = "active"
	StateSuccess              State = "success"
	StateFailed               State = "failed"
	StateTerminatingOnCancel  State = "terminatingOnCancel"
	StateTerminatingOnFailure State = "terminatingOnFailure"
	StateCancelled            State = "cancelled"
)

// Terminal reports whether no further state transitions can occur.
func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StateFailed, StateCancelled:
		return true
	}
	return false
}

// Execution carries the timing and billing information of a job run.
type Execution struct {
	StartedDateTime string  `json:"startedDateTime,omitempty"`
	EndedDateTime   string  `json:"endedDateTime,omitempty"`
	EstimatedUnits  float64 `json:"estimatedUnits,omitempty"`
}

// Job is one submitted job as the service reports it. Specifications
// holds the realized per-variant form and is populated from the typed
// dispatcher during decoding.
type Job struct {
	ID              string        `json:"id"`
	Name            string        `json:"name,omitempty"`
	Type            specs.JobType `json:"type"`
	ITwinID         string        `json:"iTwinId,omitempty"`
	State           State         `json:"state,omitempty"`
	CreatedDateTime string        `json:"createdDateTime,omitempty"`
	Execution       *Execution    `json:"executionInformation,omitempty"`

	Specifications specs.Specifications `json:"-"`
}

// UnmarshalJSON decodes the common fields, then dispatches the
// specifications body to the variant named by the type tag.
func (j *Job) UnmarshalJSON(data []byte) error {
	type jobAlias Job
	aux := struct {
		*jobAlias
		Specifications json.RawMessage `json:"specifications"`
	}{jobAlias: (*jobAlias)(j)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Specifications) > 0 {
		spec, err := specs.Unmarshal(j.Type, aux.Specifications)
		if err != nil {
			return fmt.Errorf("job %s: %w", j.ID, err)
		}
		j.Specifications = spec
	}
	return nil
}

// Create describes a job to submit.
type Create struct {
	Name    string
	ITwinID string
	// Specifications names the variant and carries its inputs,
	// requested output kinds, and options.
	Specifications specs.SpecificationsCreate
}

// Progress is a point-in-time progress report.
type Progress struct {
	State      State   `json:"state"`
	Percentage float64 `json:"percentage"`
}

// Message is one diagnostic emitted by the service, with a localized
// template and its interpolation parameters.
type Message struct {
	Code    string   `json:"code"`
	Title   string   `json:"title,omitempty"`
	Message string   `json:"message"`
	Params  []string `json:"params,omitempty"`
}

// Messages groups a job's diagnostics by severity.
type Messages struct {
	Errors   []Message `json:"errors"`
	Warnings []Message `json:"warnings"`
}

// CostInput feeds a cost estimation. Fields are variant-specific; the
// service ignores the ones that do not apply.
type CostInput struct {
	GigaPixels     float64 `json:"gigaPixels,omitempty"`
	MegaPoints     float64 `json:"megaPoints,omitempty"`
	MeshQuality    string  `json:"meshQuality,omitempty"`
	SceneWidth     float64 `json:"sceneWidth,omitempty"`
	SceneHeight    float64 `json:"sceneHeight,omitempty"`
	SceneLength    float64 `json:"sceneLength,omitempty"`
	DetectorScale  string  `json:"detectorScale,omitempty"`
	DetectorCost   float64 `json:"detectorCost,omitempty"`
	NumberOfPhotos int     `json:"numberOfPhotos,omitempty"`
}

// CostEstimate is the service's answer to a cost estimation.
type CostEstimate struct {
	Type           specs.JobType `json:"type"`
	EstimatedUnits float64       `json:"estimatedUnits"`
}

// Bucket describes an iTwin's reality-modeling storage bucket.
type Bucket struct {
	ID          string `json:"id"`
	ITwinID     string `json:"iTwinId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// JobPage is one page of a job listing.
type JobPage struct {
	Jobs              []Job
	ContinuationToken string
}
