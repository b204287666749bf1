// Package realitydata is the client for the reality-management API: the
// lifecycle of reality-data resources, the container access URLs, and
// the authoring protocol that brackets bulk uploads.
package realitydata

import "fmt"

// Common reality-data types accepted by the service. The service also
// accepts free-form types; these constants cover the ones this SDK
// produces itself.
const (
	TypeCCImageCollection = "CCImageCollection"
	TypeCCOrientations    = "CCOrientations"
	TypeContextScene      = "ContextScene"
	TypeContextDetector   = "ContextDetector"
	TypeCesium3DTiles     = "Cesium3DTiles"
	TypePointCloud        = "PointCloud"
	TypeScanCollection    = "ScanCollection"
	TypeThreeMX           = "3MX"
	TypeThreeSM           = "3SM"
	TypeOPC               = "OPC"
)

// Point is a WGS84 coordinate.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Extent is the geographic bounding box of a reality-data. SouthWest
// must be south and west of NorthEast.
type Extent struct {
	SouthWest Point `json:"southWest"`
	NorthEast Point `json:"northEast"`
}

// Validate checks the corner ordering. A nil extent is valid.
func (e *Extent) Validate() error {
	if e == nil {
		return nil
	}
	if e.SouthWest.Latitude > e.NorthEast.Latitude {
		return fmt.Errorf("extent south-west latitude %g exceeds north-east latitude %g",
			e.SouthWest.Latitude, e.NorthEast.Latitude)
	}
	if e.SouthWest.Longitude > e.NorthEast.Longitude {
		return fmt.Errorf("extent south-west longitude %g exceeds north-east longitude %g",
			e.SouthWest.Longitude, e.NorthEast.Longitude)
	}
	return nil
}

// Acquisition records when and by whom the source data was captured.
type Acquisition struct {
	StartDateTime string `json:"startDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
	Acquirer      string `json:"acquirer,omitempty"`
}

// RealityData is one reality-data resource as the service reports it.
// Timestamps are RFC 3339 strings as received.
type RealityData struct {
	ID                 string       `json:"id,omitempty"`
	ITwinID            string       `json:"iTwinId,omitempty"`
	DisplayName        string       `json:"displayName,omitempty"`
	Type               string       `json:"type,omitempty"`
	Classification     string       `json:"classification,omitempty"`
	Description        string       `json:"description,omitempty"`
	Dataset            string       `json:"dataset,omitempty"`
	Group              string       `json:"group,omitempty"`
	RootDocument       string       `json:"rootDocument,omitempty"`
	Acquisition        *Acquisition `json:"acquisition,omitempty"`
	Extent             *Extent      `json:"extent,omitempty"`
	Size               int64        `json:"size,omitempty"` // kilobytes
	Authoring          bool         `json:"authoring"`
	CreatedDateTime    string       `json:"createdDateTime,omitempty"`
	ModifiedDateTime   string       `json:"modifiedDateTime,omitempty"`
	LastAccessedAt     string       `json:"lastAccessedDateTime,omitempty"`
	OwnerID            string       `json:"ownerId,omitempty"`
	DataCenterLocation string       `json:"dataCenterLocation,omitempty"`
	Tags               []string     `json:"tags,omitempty"`
}

// Patch carries the fields of a reality-data update. Only non-nil
// fields are written; everything else keeps its current value.
type Patch struct {
	DisplayName    *string      `json:"displayName,omitempty"`
	Type           *string      `json:"type,omitempty"`
	Classification *string      `json:"classification,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Dataset        *string      `json:"dataset,omitempty"`
	Group          *string      `json:"group,omitempty"`
	RootDocument   *string      `json:"rootDocument,omitempty"`
	Acquisition    *Acquisition `json:"acquisition,omitempty"`
	Extent         *Extent      `json:"extent,omitempty"`
	Authoring      *bool        `json:"authoring,omitempty"`
	Tags           *[]string    `json:"tags,omitempty"`
}

// WithDisplayName sets the display name on the patch.
func (p Patch) WithDisplayName(s string) Patch {
	p.DisplayName = &s
	return p
}

// WithDescription sets the description on the patch.
func (p Patch) WithDescription(s string) Patch {
	p.Description = &s
	return p
}

// WithRootDocument sets the root document on the patch.
func (p Patch) WithRootDocument(s string) Patch {
	p.RootDocument = &s
	return p
}

// WithAuthoring sets the authoring flag on the patch.
func (p Patch) WithAuthoring(v bool) Patch {
	p.Authoring = &v
	return p
}

// WithTags replaces the tag set on the patch.
func (p Patch) WithTags(tags []string) Patch {
	p.Tags = &tags
	return p
}

// Page is one page of a reality-data listing.
type Page struct {
	RealityData       []RealityData
	ContinuationToken string
}
