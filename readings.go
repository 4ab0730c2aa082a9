package element

import (
	"context"
	"fmt"
)

// readingPage returns a pageFunc over one device's readings.
func (c *Client) readingPage(deviceID string) pageFunc[Reading] {
	return func(ctx context.Context, opts *ListOptions) (*envelope[[]Reading], error) {
		data, err := c.get(ctx, apiPrefix+"/devices/"+deviceID+"/readings", opts.Values())
		if err != nil {
			return nil, err
		}
		env, err := decodeEnvelope[[]Reading](data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reading list: %w (body: %s)", err, truncatePreview(data))
		}
		return env, nil
	}
}

// tagReadingPage returns a pageFunc over readings of all devices carrying a tag.
func (c *Client) tagReadingPage(tagID string) pageFunc[Reading] {
	return func(ctx context.Context, opts *ListOptions) (*envelope[[]Reading], error) {
		data, err := c.get(ctx, apiPrefix+"/tags/"+tagID+"/readings", opts.Values())
		if err != nil {
			return nil, err
		}
		env, err := decodeEnvelope[[]Reading](data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse reading list: %w (body: %s)", err, truncatePreview(data))
		}
		return env, nil
	}
}

// ListReadings returns a device's readings, with the same fast-path/full-walk
// split as ListDevices. Reading histories can be large; prefer StreamReadings
// or the Readings iterator when the result set is unbounded.
func (c *Client) ListReadings(ctx context.Context, deviceID string, opts *ListOptions) ([]Reading, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	fetch := c.readingPage(deviceID)
	if hasFastPathLimit(opts) {
		env, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, fetch)
}

// StreamReadings walks a device's reading pages, handing each non-empty page
// to fn. The next page is not requested until fn returns.
func (c *Client) StreamReadings(ctx context.Context, deviceID string, opts *ListOptions, fn func([]Reading) error) error {
	if deviceID == "" {
		return ErrEmptyDeviceID
	}
	return paginateStream(ctx, opts, c.readingPage(deviceID), fn)
}

// ListTagReadings returns readings from every device carrying the given tag.
func (c *Client) ListTagReadings(ctx context.Context, tagID string, opts *ListOptions) ([]Reading, error) {
	if tagID == "" {
		return nil, ErrEmptyTagID
	}
	fetch := c.tagReadingPage(tagID)
	if hasFastPathLimit(opts) {
		env, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, fetch)
}

// StreamTagReadings walks reading pages for a tag, handing each non-empty
// page to fn.
func (c *Client) StreamTagReadings(ctx context.Context, tagID string, opts *ListOptions, fn func([]Reading) error) error {
	if tagID == "" {
		return ErrEmptyTagID
	}
	return paginateStream(ctx, opts, c.tagReadingPage(tagID), fn)
}
