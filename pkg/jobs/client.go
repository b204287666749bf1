package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/rest"
	"github.com/realitycloud/realitycloud/pkg/specs"
)

// Client submits and tracks jobs. Hold one per goroutine.
type Client struct {
	session *rest.Session
}

// NewClient builds a job client on an existing session.
func NewClient(session *rest.Session) *Client {
	return &Client{session: session}
}

// jobEnvelope is the single-job wire wrapper.
type jobEnvelope struct {
	Job Job `json:"job"`
}

func jobsPath(service specs.Service) string {
	return "/" + string(service) + "/jobs"
}

// Submit creates a new job. The specifications are validated and
// serialized through the variant dispatcher; the target service is
// derived from the job type.
func (c *Client) Submit(ctx context.Context, create Create) apierr.Response[Job] {
	if create.Specifications == nil {
		return apierr.Failure[Job](0, apierr.New(apierr.CodeSpecSchema, "specifications are required"))
	}
	jobType := create.Specifications.JobType()
	service, err := specs.ServiceFor(jobType)
	if err != nil {
		return apierr.Failure[Job](0, apierr.Wrap(apierr.CodeSpecSchema, "resolve service", err))
	}
	raw, err := specs.Marshal(create.Specifications)
	if err != nil {
		return apierr.FailureOf[Job](0, err, apierr.CodeSpecSchema)
	}

	body := struct {
		Name           string          `json:"name,omitempty"`
		Type           specs.JobType   `json:"type"`
		ITwinID        string          `json:"iTwinId"`
		Specifications json.RawMessage `json:"specifications"`
	}{create.Name, jobType, create.ITwinID, raw}

	var out jobEnvelope
	status, err := c.session.Post(ctx, jobsPath(service), rest.V2, body, &out)
	if err != nil {
		return apierr.FailureOf[Job](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.Job)
}

// Get fetches a job, including its realized outputs once present.
func (c *Client) Get(ctx context.Context, id string, service specs.Service) apierr.Response[Job] {
	var out jobEnvelope
	status, err := c.session.Get(ctx, jobsPath(service)+"/"+id, rest.V2, nil, &out)
	if err != nil {
		return apierr.FailureOf[Job](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.Job)
}

// GetProgress fetches the job's state and completion percentage.
func (c *Client) GetProgress(ctx context.Context, id string, service specs.Service) apierr.Response[Progress] {
	var out struct {
		Progress Progress `json:"progress"`
	}
	status, err := c.session.Get(ctx, jobsPath(service)+"/"+id+"/progress", rest.V2, nil, &out)
	if err != nil {
		return apierr.FailureOf[Progress](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.Progress)
}

// GetMessages fetches the job's errors and warnings.
func (c *Client) GetMessages(ctx context.Context, id string, service specs.Service) apierr.Response[Messages] {
	var out struct {
		Messages Messages `json:"messages"`
	}
	status, err := c.session.Get(ctx, jobsPath(service)+"/"+id+"/messages", rest.V2, nil, &out)
	if err != nil {
		return apierr.FailureOf[Messages](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.Messages)
}

// Cancel requests cancellation of a running job. Cancelling a job that
// already reached a terminal state fails with an invalid-state error.
func (c *Client) Cancel(ctx context.Context, id string, service specs.Service) apierr.Response[Job] {
	current := c.Get(ctx, id, service)
	if !current.Ok() {
		return current
	}
	if current.Value.State.Terminal() {
		return apierr.Failure[Job](current.StatusCode,
			apierr.New(apierr.CodeInvalidState, "job is already in a terminal state").
				WithContext("state", string(current.Value.State)))
	}

	body := map[string]string{"state": string(StateCancelled)}
	var out jobEnvelope
	status, err := c.session.Patch(ctx, jobsPath(service)+"/"+id, rest.V2, body, &out)
	if err != nil {
		return apierr.FailureOf[Job](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.Job)
}

// DeleteJob removes a job record.
func (c *Client) DeleteJob(ctx context.Context, id string, service specs.Service) apierr.Response[struct{}] {
	status, err := c.session.Delete(ctx, jobsPath(service)+"/"+id, rest.V2)
	if err != nil {
		return apierr.FailureOf[struct{}](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, struct{}{})
}

// ListFilter narrows a job listing.
type ListFilter struct {
	// Filter is passed verbatim as the $filter query parameter.
	Filter string
	// Top is the page size, zero lets the service choose.
	Top               int
	ContinuationToken string
}

// List returns one page of jobs on a service. The continuation token,
// when non-empty, fetches the next page.
func (c *Client) List(ctx context.Context, service specs.Service, filter ListFilter) apierr.Response[JobPage] {
	q := url.Values{}
	if filter.Filter != "" {
		q.Set("$filter", filter.Filter)
	}
	if filter.Top != 0 {
		q.Set("$top", strconv.Itoa(filter.Top))
	}
	if filter.ContinuationToken != "" {
		q.Set("continuationToken", filter.ContinuationToken)
	}

	var out struct {
		Jobs  []Job `json:"jobs"`
		Links struct {
			Next *struct {
				Href string `json:"href"`
			} `json:"next"`
		} `json:"_links"`
	}
	status, err := c.session.Do(ctx, rest.Request{
		Method:  http.MethodGet,
		Path:    jobsPath(service),
		Version: rest.V2,
		Query:   q,
		Out:     &out,
	})
	if err != nil {
		return apierr.FailureOf[JobPage](status, err, apierr.CodeUnknown)
	}

	page := JobPage{Jobs: out.Jobs}
	if out.Links.Next != nil {
		if u, err := url.Parse(out.Links.Next.Href); err == nil {
			page.ContinuationToken = u.Query().Get("continuationToken")
		}
	}
	return apierr.Success(status, page)
}

// EstimateCost asks the service for the unit cost of a prospective job.
func (c *Client) EstimateCost(ctx context.Context, jobType specs.JobType, input CostInput) apierr.Response[CostEstimate] {
	service, err := specs.ServiceFor(jobType)
	if err != nil {
		return apierr.Failure[CostEstimate](0, apierr.Wrap(apierr.CodeSpecSchema, "resolve service", err))
	}

	body := struct {
		Type specs.JobType `json:"type"`
		CostInput
	}{jobType, input}

	var out struct {
		CostEstimate CostEstimate `json:"costEstimate"`
	}
	status, err := c.session.Post(ctx, "/"+string(service)+"/costs", rest.V2, body, &out)
	if err != nil {
		return apierr.FailureOf[CostEstimate](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.CostEstimate)
}

// GetBucket fetches the reality-modeling storage bucket of an iTwin.
func (c *Client) GetBucket(ctx context.Context, iTwinID string) apierr.Response[Bucket] {
	var out struct {
		Bucket Bucket `json:"bucket"`
	}
	status, err := c.session.Get(ctx, "/reality-modeling/itwins/"+iTwinID+"/bucket", rest.V2, nil, &out)
	if err != nil {
		return apierr.FailureOf[Bucket](status, err, apierr.CodeUnknown)
	}
	return apierr.Success(status, out.Bucket)
}
