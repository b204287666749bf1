package realitydata

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/scene"
	"github.com/realitycloud/realitycloud/pkg/transfer"
)

// TransferOptions tunes an upload or download of container content.
type TransferOptions struct {
	// ITwinID scopes the access-URL request.
	ITwinID string
	// Extensions restricts an upload to files with these extensions.
	Extensions []string
	// Recursive uploads subdirectories of a directory source too.
	Recursive bool
	// Hook receives aggregate transfer progress.
	Hook transfer.ProgressHook
	// Table, when set on a download, rewrites a downloaded scene file
	// from cloud references back to local paths.
	Table *scene.ReferenceTable
}

// UploadRealityData writes a file or directory into an existing
// reality-data's container. The resource is marked authoring for the
// duration of the transfer and unmarked afterwards on every exit path;
// a failure of that terminal unmark supersedes any transfer error.
func (c *Client) UploadRealityData(ctx context.Context, id, source string, opts TransferOptions) apierr.Response[struct{}] {
	access := c.WriteAccessURL(ctx, id, opts.ITwinID)
	if !access.Ok() {
		if access.StatusCode == http.StatusNotFound {
			return apierr.Failure[struct{}](access.StatusCode,
				apierr.New(apierr.CodeInvalidState, "cannot upload to a non-existent reality-data").
					WithContext("id", id))
		}
		return apierr.Failure[struct{}](access.StatusCode, access.Err)
	}

	if mark := c.Update(ctx, id, Patch{}.WithAuthoring(true)); !mark.Ok() {
		return apierr.Failure[struct{}](mark.StatusCode, mark.Err)
	}

	transferErr := c.transfer.Upload(ctx, access.Value, source, transfer.UploadOptions{
		Extensions: opts.Extensions,
		Recursive:  opts.Recursive,
		Hook:       opts.Hook,
	})

	// The unmark runs regardless of the transfer outcome so the
	// resource never stays pinned as mutable. Use a fresh context in
	// case the transfer consumed or cancelled the caller's.
	unmark := c.Update(context.WithoutCancel(ctx), id, Patch{}.WithAuthoring(false))
	if !unmark.Ok() {
		return apierr.Failure[struct{}](unmark.StatusCode, unmark.Err)
	}
	if transferErr != nil {
		return apierr.FailureOf[struct{}](0, transferErr, apierr.CodeTransferFailed)
	}
	return apierr.Success(unmark.StatusCode, struct{}{})
}

// DownloadRealityData copies a reality-data's container into destDir.
// When opts.Table is set and the download contains a scene file, its
// references are rewritten to local paths in place.
func (c *Client) DownloadRealityData(ctx context.Context, id, destDir string, opts TransferOptions) apierr.Response[struct{}] {
	access := c.ReadAccessURL(ctx, id, opts.ITwinID)
	if !access.Ok() {
		return apierr.Failure[struct{}](access.StatusCode, access.Err)
	}

	if err := c.transfer.Download(ctx, access.Value, destDir, transfer.DownloadOptions{
		Hook: opts.Hook,
	}); err != nil {
		return apierr.FailureOf[struct{}](0, err, apierr.CodeTransferFailed)
	}

	if opts.Table != nil {
		if path, ok := scene.FindSceneFile(destDir); ok {
			if err := scene.RewriteFile(path, scene.CloudToLocal, opts.Table); err != nil {
				return apierr.FailureOf[struct{}](access.StatusCode, err, apierr.CodeInvalidScene)
			}
		}
	}
	return apierr.Success(access.StatusCode, struct{}{})
}

// SceneUpload describes a scene to publish as a new reality-data.
type SceneUpload struct {
	ITwinID     string
	DisplayName string
	// Type is the reality-data type, e.g. TypeContextScene or
	// TypeCCOrientations.
	Type string
	// ScenePath is the local scene document with local references.
	ScenePath string
	// Table resolves every local reference in the scene.
	Table *scene.ReferenceTable
	Hook  transfer.ProgressHook
}

// UploadSceneRealityData publishes a scene as a self-contained
// reality-data: the scene is copied to a temporary directory, its
// references rewritten to cloud form, and the rewritten copy uploaded
// into a freshly created resource. Returns the new reality-data id.
// The temporary directory is removed on all exit paths.
func (c *Client) UploadSceneRealityData(ctx context.Context, up SceneUpload) apierr.Response[string] {
	tmp := filepath.Join(os.TempDir(), "realitycloud-"+uuid.NewString())
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return apierr.FailureOf[string](0, err, apierr.CodeTransferFailed)
	}
	defer os.RemoveAll(tmp)

	base := filepath.Base(up.ScenePath)
	if err := scene.RewriteFileTo(up.ScenePath, filepath.Join(tmp, base), scene.LocalToCloud, up.Table); err != nil {
		return apierr.FailureOf[string](0, err, apierr.CodeInvalidScene)
	}

	created := c.Create(ctx, RealityData{
		ITwinID:      up.ITwinID,
		DisplayName:  up.DisplayName,
		Type:         up.Type,
		RootDocument: base,
	})
	if !created.Ok() {
		return apierr.Failure[string](created.StatusCode, created.Err)
	}
	id := created.Value.ID

	upload := c.UploadRealityData(ctx, id, tmp, TransferOptions{
		ITwinID: up.ITwinID,
		Hook:    up.Hook,
	})
	if !upload.Ok() {
		return apierr.Failure[string](upload.StatusCode, upload.Err.WithContext("realityDataId", id))
	}
	return apierr.Success(upload.StatusCode, id)
}
