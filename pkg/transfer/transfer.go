// Package transfer moves reality data between the local filesystem and
// Azure blob containers addressed by SAS URLs. It fans file transfers
// out over a bounded worker pool and reports aggregate progress to a
// caller-supplied hook, which can also cancel the transfer.
package transfer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/realitycloud/realitycloud/pkg/apierr"
	"github.com/realitycloud/realitycloud/pkg/config"
	"github.com/realitycloud/realitycloud/pkg/telemetry"
)

// ProgressHook receives the overall completion percentage in [0, 100].
// Returning false requests cancellation of the whole transfer.
type ProgressHook func(percentage float64) bool

// Options tunes the transfer core. Zero fields fall back to the
// corresponding Default values.
type Options struct {
	// PoolCap bounds the file-level worker pool.
	PoolCap int
	// SmallFileSize is the threshold below which a file counts as
	// small when sizing the pool.
	SmallFileSize int64
	// BlobConcurrency is the per-blob chunk parallelism.
	BlobConcurrency int
	// MaxRetries is the per-request retry budget inside the blob client.
	MaxRetries int
	// TryTimeout bounds a single attempt inside the blob client.
	TryTimeout time.Duration
}

// DefaultOptions mirrors config.Default().Transfer.
func DefaultOptions() Options {
	t := config.Default().Transfer
	return Options{
		PoolCap:         t.PoolCap,
		SmallFileSize:   t.SmallFileSize,
		BlobConcurrency: t.BlobConcurrency,
		MaxRetries:      t.MaxRetries,
		TryTimeout:      t.TryTimeout,
	}
}

// Client performs bulk transfers against SAS-addressed containers.
type Client struct {
	opts Options

	// newContainer is swapped out in tests.
	newContainer func(sasURL string, opts Options) (blobContainer, error)
}

// NewClient builds a transfer client from resolved configuration.
func NewClient(cfg *config.Config) *Client {
	t := cfg.Transfer
	return New(Options{
		PoolCap:         t.PoolCap,
		SmallFileSize:   t.SmallFileSize,
		BlobConcurrency: t.BlobConcurrency,
		MaxRetries:      t.MaxRetries,
		TryTimeout:      t.TryTimeout,
	})
}

// New builds a transfer client with explicit options.
func New(opts Options) *Client {
	def := DefaultOptions()
	if opts.PoolCap <= 0 {
		opts.PoolCap = def.PoolCap
	}
	if opts.SmallFileSize <= 0 {
		opts.SmallFileSize = def.SmallFileSize
	}
	if opts.BlobConcurrency <= 0 {
		opts.BlobConcurrency = def.BlobConcurrency
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = def.MaxRetries
	}
	if opts.TryTimeout <= 0 {
		opts.TryTimeout = def.TryTimeout
	}
	return &Client{opts: opts, newContainer: newAzureContainer}
}

// UploadOptions narrows and redirects an upload.
type UploadOptions struct {
	// Extensions keeps only files with one of these extensions
	// (with or without the leading dot, case-insensitive). Empty
	// means all files.
	Extensions []string
	// Recursive descends into subdirectories of a directory source.
	// When false only the directory's immediate files are uploaded.
	Recursive bool
	// Prefix is prepended to every blob name.
	Prefix string
	// Hook receives aggregate progress.
	Hook ProgressHook
}

// DownloadOptions narrows and redirects a download.
type DownloadOptions struct {
	// Prefix restricts the download to blobs under this prefix. The
	// prefix is stripped from the local paths.
	Prefix string
	// Hook receives aggregate progress.
	Hook ProgressHook
}

// localFile is one unit of upload work.
type localFile struct {
	abs  string
	name string // blob name, forward slashes
	size int64
}

// poolSize derives the worker count from the number of small files:
// a floor of four workers plus one per hundred small files, capped.
func poolSize(cap, smallFiles int) int {
	n := 4 + smallFiles/100
	if n > cap {
		n = cap
	}
	return n
}

// progressTracker aggregates per-file byte counts into a single
// percentage and relays it to the hook outside the lock.
type progressTracker struct {
	hook   ProgressHook
	cancel context.CancelFunc

	mu      sync.Mutex
	perFile map[string]int64
	done    int64
	total   int64

	cancelled atomic.Bool
}

func newProgressTracker(total int64, hook ProgressHook, cancel context.CancelFunc) *progressTracker {
	return &progressTracker{
		hook:    hook,
		cancel:  cancel,
		perFile: make(map[string]int64),
		total:   total,
	}
}

// update records the cumulative byte count for one file. The azblob
// progress callbacks report cumulative, not incremental, counts.
func (p *progressTracker) update(name string, transferred int64) {
	if p.hook == nil {
		return
	}
	p.mu.Lock()
	p.done += transferred - p.perFile[name]
	p.perFile[name] = transferred
	pct := 100.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100
	}
	p.mu.Unlock()

	if !p.hook(pct) {
		if p.cancelled.CompareAndSwap(false, true) {
			p.cancel()
		}
	}
}

// Upload copies a file or directory into the container behind sasURL.
// Blob names mirror the relative layout under source; subdirectories
// are entered only when opts.Recursive is set.
func (c *Client) Upload(ctx context.Context, sasURL, source string, opts UploadOptions) error {
	files, total, small, err := collectFiles(source, opts, c.opts.SmallFileSize)
	if err != nil {
		return apierr.Wrap(apierr.CodeTransferFailed, "enumerating upload source", err).
			WithContext("source", source)
	}
	if len(files) == 0 {
		if opts.Hook != nil {
			opts.Hook(100)
		}
		return nil
	}

	ctx, span := telemetry.StartTransfer(ctx, "upload", len(files), total)
	err = c.upload(ctx, sasURL, files, total, small, opts)
	telemetry.EndTransfer(span, err)
	return err
}

func (c *Client) upload(ctx context.Context, sasURL string, files []localFile, total int64, small int, opts UploadOptions) error {
	cont, err := c.newContainer(sasURL, c.opts)
	if err != nil {
		return apierr.Wrap(apierr.CodeTransferFailed, "opening container", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	tracker := newProgressTracker(total, opts.Hook, cancel)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(poolSize(c.opts.PoolCap, small))
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(file.abs)
			if err != nil {
				return fmt.Errorf("open %s: %w", file.abs, err)
			}
			defer f.Close()
			if err := cont.Upload(gctx, file.name, f, func(n int64) {
				tracker.update(file.name, n)
			}); err != nil {
				return fmt.Errorf("upload %s: %w", file.name, err)
			}
			tracker.update(file.name, file.size)
			return nil
		})
	}
	return c.finish(g.Wait(), tracker, "upload")
}

// Download copies blobs from the container behind sasURL into destDir,
// recreating the blob name hierarchy as directories.
func (c *Client) Download(ctx context.Context, sasURL, destDir string, opts DownloadOptions) error {
	cont, err := c.newContainer(sasURL, c.opts)
	if err != nil {
		return apierr.Wrap(apierr.CodeTransferFailed, "opening container", err)
	}
	items, err := cont.List(ctx, opts.Prefix)
	if err != nil {
		return apierr.Wrap(apierr.CodeTransferFailed, "listing container", err)
	}
	if len(items) == 0 {
		if opts.Hook != nil {
			opts.Hook(100)
		}
		return nil
	}

	var total int64
	small := 0
	for _, it := range items {
		total += it.Size
		if it.Size <= c.opts.SmallFileSize {
			small++
		}
	}

	ctx, span := telemetry.StartTransfer(ctx, "download", len(items), total)
	err = c.download(ctx, cont, items, total, small, destDir, opts)
	telemetry.EndTransfer(span, err)
	return err
}

func (c *Client) download(ctx context.Context, cont blobContainer, items []blobItem, total int64, small int, destDir string, opts DownloadOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	tracker := newProgressTracker(total, opts.Hook, cancel)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(poolSize(c.opts.PoolCap, small))
	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rel := strings.TrimPrefix(item.Name, opts.Prefix)
			rel = strings.TrimPrefix(rel, "/")
			dest := filepath.Join(destDir, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("mkdir for %s: %w", dest, err)
			}
			f, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("create %s: %w", dest, err)
			}
			defer f.Close()
			if err := cont.Download(gctx, item.Name, f, func(n int64) {
				tracker.update(item.Name, n)
			}); err != nil {
				return fmt.Errorf("download %s: %w", item.Name, err)
			}
			tracker.update(item.Name, item.Size)
			return nil
		})
	}
	return c.finish(g.Wait(), tracker, "download")
}

// List returns the names of all blobs under prefix in the container.
func (c *Client) List(ctx context.Context, sasURL, prefix string) ([]string, error) {
	cont, err := c.newContainer(sasURL, c.opts)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeTransferFailed, "opening container", err)
	}
	items, err := cont.List(ctx, prefix)
	if err != nil {
		return nil, apierr.Wrap(apierr.CodeTransferFailed, "listing container", err)
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named blobs from the container.
func (c *Client) Delete(ctx context.Context, sasURL string, names []string) error {
	cont, err := c.newContainer(sasURL, c.opts)
	if err != nil {
		return apierr.Wrap(apierr.CodeTransferFailed, "opening container", err)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(poolSize(c.opts.PoolCap, len(names)))
	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := cont.Delete(gctx, name); err != nil {
				return fmt.Errorf("delete %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return apierr.Wrap(apierr.CodeTransferFailed, "deleting blobs", err)
	}
	return nil
}

// finish maps the pool outcome to the transfer error taxonomy. A hook
// veto wins over the context error it caused.
func (c *Client) finish(err error, tracker *progressTracker, op string) error {
	if tracker.cancelled.Load() {
		return apierr.New(apierr.CodeTransferCancelled, op+" cancelled by progress hook")
	}
	if err != nil {
		return apierr.Wrap(apierr.CodeTransferFailed, op+" failed", err)
	}
	if tracker.hook != nil {
		tracker.hook(100)
	}
	return nil
}

// collectFiles resolves source to the list of files to upload, their
// total size, and how many fall under the small-file threshold.
func collectFiles(source string, opts UploadOptions, smallSize int64) ([]localFile, int64, int, error) {
	keep := extensionFilter(opts.Extensions)
	prefix := opts.Prefix

	info, err := os.Stat(source)
	if err != nil {
		return nil, 0, 0, err
	}

	var files []localFile
	if !info.IsDir() {
		if keep(source) {
			files = append(files, localFile{
				abs:  source,
				name: path.Join(prefix, filepath.Base(source)),
				size: info.Size(),
			})
		}
	} else {
		err = filepath.WalkDir(source, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if !opts.Recursive && p != source {
					return fs.SkipDir
				}
				return nil
			}
			if !keep(p) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(source, p)
			if err != nil {
				return err
			}
			files = append(files, localFile{
				abs:  p,
				name: path.Join(prefix, filepath.ToSlash(rel)),
				size: fi.Size(),
			})
			return nil
		})
		if err != nil {
			return nil, 0, 0, err
		}
	}

	var total int64
	small := 0
	for _, f := range files {
		total += f.size
		if f.size <= smallSize {
			small++
		}
	}
	return files, total, small, nil
}

// extensionFilter builds a case-insensitive extension predicate.
func extensionFilter(extensions []string) func(string) bool {
	if len(extensions) == 0 {
		return func(string) bool { return true }
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		set[ext] = struct{}{}
	}
	return func(p string) bool {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))
		_, ok := set[ext]
		return ok
	}
}
