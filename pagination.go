package element

import (
	"context"
	"errors"
	"iter"
)

// defaultPageLimit is the page size used by full cursor walks. Callers can
// override it through ListOptions.Limit; the server truncates anything
// above 100 regardless.
const defaultPageLimit = 100

// pageFunc issues one page request of a cursor walk.
type pageFunc[T any] func(ctx context.Context, opts *ListOptions) (*envelope[[]T], error)

// walkOptions clones the caller's options for a cursor walk, filling in the
// default page limit. The caller's explicit limit, if any, wins.
func walkOptions(opts *ListOptions) *ListOptions {
	merged := &ListOptions{Limit: defaultPageLimit}
	if opts != nil {
		*merged = *opts
		if opts.Limit <= 0 {
			merged.Limit = defaultPageLimit
		}
	}
	return merged
}

// paginate walks the cursor chain and returns the concatenation of all page
// bodies in page order. A caller-supplied RetrieveAfter cursor seeds the
// first request. The walk ends when a page comes back without a cursor; an
// empty body with a cursor present continues, since the server may return
// zero items on an intermediate page. Page requests are strictly
// sequential, and a failed request aborts the walk with partial results
// discarded.
func paginate[T any](ctx context.Context, opts *ListOptions, fetch pageFunc[T]) ([]T, error) {
	reqOpts := walkOptions(opts)

	var all []T
	for {
		env, err := fetch(ctx, reqOpts)
		if err != nil {
			return nil, err
		}

		all = append(all, env.Body...)

		if env.RetrieveAfterID == "" {
			return all, nil
		}
		reqOpts.RetrieveAfter = env.RetrieveAfterID
	}
}

// paginateStream walks the cursor chain like paginate, but hands each
// non-empty page body to fn instead of accumulating. The next page is not
// requested until fn returns, which gives natural backpressure. Empty pages
// are skipped. An error from fn or from a page request aborts the walk;
// pages already delivered are not rolled back.
func paginateStream[T any](ctx context.Context, opts *ListOptions, fetch pageFunc[T], fn func([]T) error) error {
	reqOpts := walkOptions(opts)

	for {
		env, err := fetch(ctx, reqOpts)
		if err != nil {
			return err
		}

		if len(env.Body) > 0 {
			if err := fn(env.Body); err != nil {
				return err
			}
		}

		if env.RetrieveAfterID == "" {
			return nil
		}
		reqOpts.RetrieveAfter = env.RetrieveAfterID
	}
}

// paginateSeq exposes a cursor walk as a single-use iterator over items.
// Stops iteration early if an error occurs or the caller breaks out.
func paginateSeq[T any](ctx context.Context, opts *ListOptions, fetch pageFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		err := paginateStream(ctx, opts, fetch, func(page []T) error {
			for _, item := range page {
				if !yield(item, nil) {
					return errStopIteration
				}
			}
			return nil
		})
		if err != nil && err != errStopIteration {
			yield(zero, err)
		}
	}
}

// errStopIteration signals that the consumer broke out of an iterator; it
// never escapes paginateSeq.
var errStopIteration = errors.New("element: iteration stopped")

// Devices returns an iterator over all devices with automatic pagination.
func (c *Client) Devices(ctx context.Context, opts *ListOptions) iter.Seq2[Device, error] {
	return paginateSeq(ctx, opts, c.devicePage)
}

// Readings returns an iterator over a device's readings with automatic
// pagination.
func (c *Client) Readings(ctx context.Context, deviceID string, opts *ListOptions) iter.Seq2[Reading, error] {
	return func(yield func(Reading, error) bool) {
		if deviceID == "" {
			yield(Reading{}, ErrEmptyDeviceID)
			return
		}
		for r, err := range paginateSeq(ctx, opts, c.readingPage(deviceID)) {
			if !yield(r, err) {
				return
			}
		}
	}
}

// Packets returns an iterator over a device's packets with automatic
// pagination.
func (c *Client) Packets(ctx context.Context, deviceID string, opts *ListOptions) iter.Seq2[Packet, error] {
	return func(yield func(Packet, error) bool) {
		if deviceID == "" {
			yield(Packet{}, ErrEmptyDeviceID)
			return
		}
		for p, err := range paginateSeq(ctx, opts, c.packetPage(deviceID)) {
			if !yield(p, err) {
				return
			}
		}
	}
}

// hasFastPathLimit reports whether the caller asked for a bounded result
// set that fits in a single page, in which case list methods issue exactly
// one request and ignore any returned cursor.
func hasFastPathLimit(opts *ListOptions) bool {
	return opts != nil && opts.Limit > 0 && opts.Limit <= defaultPageLimit
}
