package transfer

import (
	"context"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// blobItem describes one blob in a container listing.
type blobItem struct {
	Name string
	Size int64
}

// blobContainer is the single-blob surface the transfer core drives.
// Per-blob retry and chunking live below this interface.
type blobContainer interface {
	Upload(ctx context.Context, name string, f *os.File, progress func(int64)) error
	Download(ctx context.Context, name string, f *os.File, progress func(int64)) error
	List(ctx context.Context, prefix string) ([]blobItem, error)
	Delete(ctx context.Context, name string) error
}

// azureContainer implements blobContainer against an Azure blob container
// addressed by a SAS URL.
type azureContainer struct {
	client      *container.Client
	concurrency uint16
}

// newAzureContainer opens a container client on an already-acquired SAS
// URL. No further authentication happens at this layer.
func newAzureContainer(sasURL string, opts Options) (blobContainer, error) {
	client, err := container.NewClientWithNoCredential(sasURL, &container.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries: int32(opts.MaxRetries),
				TryTimeout: opts.TryTimeout,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &azureContainer{
		client:      client,
		concurrency: uint16(opts.BlobConcurrency),
	}, nil
}

func (a *azureContainer) Upload(ctx context.Context, name string, f *os.File, progress func(int64)) error {
	_, err := a.client.NewBlockBlobClient(name).UploadFile(ctx, f, &blockblob.UploadFileOptions{
		Concurrency: a.concurrency,
		Progress:    progress,
	})
	return err
}

func (a *azureContainer) Download(ctx context.Context, name string, f *os.File, progress func(int64)) error {
	_, err := a.client.NewBlobClient(name).DownloadFile(ctx, f, &blob.DownloadFileOptions{
		Concurrency: a.concurrency,
		Progress:    progress,
	})
	return err
}

func (a *azureContainer) List(ctx context.Context, prefix string) ([]blobItem, error) {
	var opts container.ListBlobsFlatOptions
	if prefix != "" {
		opts.Prefix = &prefix
	}

	var items []blobItem
	pager := a.client.NewListBlobsFlatPager(&opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, b := range page.Segment.BlobItems {
			if b.Name == nil {
				continue
			}
			item := blobItem{Name: *b.Name}
			if b.Properties != nil && b.Properties.ContentLength != nil {
				item.Size = *b.Properties.ContentLength
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func (a *azureContainer) Delete(ctx context.Context, name string) error {
	_, err := a.client.NewBlobClient(name).Delete(ctx, nil)
	return err
}
