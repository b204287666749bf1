package realitydata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/rest"
	"github.com/realitycloud/realitycloud/pkg/transfer"
)

const basePath = "/reality-management/reality-data/"

// containerTransfer is the slice of the transfer client this package
// drives. Satisfied by *transfer.Client.
type containerTransfer interface {
	Upload(ctx context.Context, sasURL, source string, opts transfer.UploadOptions) error
	Download(ctx context.Context, sasURL, destDir string, opts transfer.DownloadOptions) error
}

// Client mediates all reality-management calls. Hold one per goroutine.
type Client struct {
	session  *rest.Session
	transfer containerTransfer
}

// NewClient builds a reality-data client on an existing session.
func NewClient(session *rest.Session, tc *transfer.Client) *Client {
	return &Client{session: session, transfer: tc}
}

// envelope is the single-resource wire wrapper.
type envelope struct {
	RealityData RealityData `json:"realityData"`
}

// links is the navigation block on listing and access responses.
type links struct {
	Next         *link `json:"next,omitempty"`
	ContainerURL *link `json:"containerUrl,omitempty"`
}

type link struct {
	Href string `json:"href"`
}

// --- Lifecycle ---

// Create registers a new reality-data. rd.ITwinID, rd.DisplayName and
// rd.Type are required by the service. Each call produces a new
// resource.
func (c *Client) Create(ctx context.Context, rd RealityData) apierr.Response[RealityData] {
	if err := rd.Extent.Validate(); err != nil {
		return apierr.Failure[RealityData](0, apierr.Wrap(apierr.CodeSchema, "invalid extent", err))
	}
	var out envelope
	status, err := c.session.Post(ctx, basePath, rest.V1, rd, &out)
	if err != nil {
		return apierr.FailureOf[RealityData](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.RealityData)
}

// Get fetches one reality-data by id.
func (c *Client) Get(ctx context.Context, id string) apierr.Response[RealityData] {
	var out envelope
	status, err := c.session.Get(ctx, basePath+id, rest.V1, nil, &out)
	if err != nil {
		return apierr.FailureOf[RealityData](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.RealityData)
}

// Update applies a partial update. Only the fields set on the patch
// are written.
func (c *Client) Update(ctx context.Context, id string, patch Patch) apierr.Response[RealityData] {
	if err := patch.Extent.Validate(); err != nil {
		return apierr.Failure[RealityData](0, apierr.Wrap(apierr.CodeSchema, "invalid extent", err))
	}
	var out envelope
	status, err := c.session.Patch(ctx, basePath+id, rest.V1, patch, &out)
	if err != nil {
		return apierr.FailureOf[RealityData](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.RealityData)
}

// DeleteData removes a reality-data and its container content. Deleting
// an already-deleted id returns the service's not-found error.
func (c *Client) DeleteData(ctx context.Context, id string) apierr.Response[struct{}] {
	status, err := c.session.Delete(ctx, basePath+id, rest.V1)
	if err != nil {
		return apierr.FailureOf[struct{}](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, struct{}{})
}

// Move reassigns a reality-data to another iTwin.
func (c *Client) Move(ctx context.Context, id, targetITwinID string) apierr.Response[RealityData] {
	body := map[string]string{"iTwinId": targetITwinID}
	var out envelope
	status, err := c.session.Patch(ctx, basePath+id+"/move", rest.V1, body, &out)
	if err != nil {
		return apierr.FailureOf[RealityData](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.RealityData)
}

// --- Listing ---

// ListFilter narrows a reality-data listing. The zero value lists
// everything visible to the caller.
type ListFilter struct {
	ITwinID        string
	Types          []string
	Extent         *Extent
	CreatedAfter   string
	CreatedBefore  string
	ModifiedAfter  string
	ModifiedBefore string
	Tag            string
	OwnedBy        string

	// Top is the page size, 1 to 1000. Zero lets the service choose.
	Top               int
	ContinuationToken string

	// Minimal requests the reduced representation.
	Minimal bool
}

func (f ListFilter) query() (url.Values, error) {
	if f.Top != 0 && (f.Top < 1 || f.Top > 1000) {
		return nil, fmt.Errorf("top must be between 1 and 1000, got %d", f.Top)
	}
	q := url.Values{}
	if f.ITwinID != "" {
		q.Set("iTwinId", f.ITwinID)
	}
	if len(f.Types) > 0 {
		q.Set("types", strings.Join(f.Types, ","))
	}
	if f.Extent != nil {
		if err := f.Extent.Validate(); err != nil {
			return nil, err
		}
		q.Set("extent", fmt.Sprintf("%g,%g,%g,%g",
			f.Extent.SouthWest.Longitude, f.Extent.SouthWest.Latitude,
			f.Extent.NorthEast.Longitude, f.Extent.NorthEast.Latitude))
	}
	if f.CreatedAfter != "" || f.CreatedBefore != "" {
		q.Set("createdDateTime", f.CreatedAfter+"/"+f.CreatedBefore)
	}
	if f.ModifiedAfter != "" || f.ModifiedBefore != "" {
		q.Set("modifiedDateTime", f.ModifiedAfter+"/"+f.ModifiedBefore)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if f.OwnedBy != "" {
		q.Set("ownedBy", f.OwnedBy)
	}
	if f.Top != 0 {
		q.Set("$top", strconv.Itoa(f.Top))
	}
	if f.ContinuationToken != "" {
		q.Set("continuationToken", f.ContinuationToken)
	}
	return q, nil
}

// List returns one page of reality-data matching the filter. The
// returned continuation token, when non-empty, fetches the next page.
func (c *Client) List(ctx context.Context, filter ListFilter) apierr.Response[Page] {
	q, err := filter.query()
	if err != nil {
		return apierr.Failure[Page](0, apierr.Wrap(apierr.CodeSchema, "invalid list filter", err))
	}

	prefer := "return=representation"
	if filter.Minimal {
		prefer = "return=minimal"
	}

	var out struct {
		RealityData []RealityData `json:"realityData"`
		Links       links         `json:"_links"`
	}
	status, err := c.session.Do(ctx, rest.Request{
		Method:  http.MethodGet,
		Path:    strings.TrimSuffix(basePath, "/"),
		Version: rest.V1,
		Prefer:  prefer,
		Query:   q,
		Out:     &out,
	})
	if err != nil {
		return apierr.FailureOf[Page](status, err, apierr.CodeUnknown)
	}

	page := Page{RealityData: out.RealityData}
	if out.Links.Next != nil {
		page.ContinuationToken = continuationFrom(out.Links.Next.Href)
	}
	return apierr.Success(status, page)
}

// continuationFrom extracts the continuation token from a next-page URL.
func continuationFrom(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("continuationToken")
}

// --- Container access ---

// ReadAccessURL acquires a read SAS URL for the resource's container.
func (c *Client) ReadAccessURL(ctx context.Context, id, iTwinID string) apierr.Response[string] {
	return c.accessURL(ctx, id, iTwinID, "readaccess")
}

// WriteAccessURL acquires a write SAS URL for the resource's container.
func (c *Client) WriteAccessURL(ctx context.Context, id, iTwinID string) apierr.Response[string] {
	return c.accessURL(ctx, id, iTwinID, "writeaccess")
}

func (c *Client) accessURL(ctx context.Context, id, iTwinID, kind string) apierr.Response[string] {
	q := url.Values{}
	if iTwinID != "" {
		q.Set("iTwinId", iTwinID)
	}
	var out struct {
		Links links `json:"_links"`
	}
	status, err := c.session.Get(ctx, basePath+id+"/"+kind, rest.V1, q, &out)
	if err != nil {
		return apierr.FailureOf[string](status, err, apierr.CodeUnknown)
	}
	if out.Links.ContainerURL == nil || out.Links.ContainerURL.Href == "" {
		return apierr.Failure[string](status,
			apierr.New(apierr.CodeSchema, "access response carries no container URL"))
	}
	return apierr.Success(status, out.Links.ContainerURL.Href)
}
