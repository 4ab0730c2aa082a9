package element

import (
	"context"
	"fmt"
)

// tagPage fetches one page of tags.
func (c *Client) tagPage(ctx context.Context, opts *ListOptions) (*envelope[[]Tag], error) {
	data, err := c.get(ctx, apiPrefix+"/tags", opts.Values())
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[[]Tag](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag list: %w (body: %s)", err, truncatePreview(data))
	}
	return env, nil
}

// ListTags returns tags matching the given options, with the same
// fast-path/full-walk split as ListDevices.
func (c *Client) ListTags(ctx context.Context, opts *ListOptions) ([]Tag, error) {
	if hasFastPathLimit(opts) {
		env, err := c.tagPage(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, c.tagPage)
}

// GetTag returns a single tag by ID or slug.
func (c *Client) GetTag(ctx context.Context, tagID string) (*Tag, error) {
	if tagID == "" {
		return nil, ErrEmptyTagID
	}
	data, err := c.get(ctx, apiPrefix+"/tags/"+tagID, nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Tag](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// CreateTag creates a new tag.
func (c *Client) CreateTag(ctx context.Context, create *TagCreate) (*Tag, error) {
	body := struct {
		Tag *TagCreate `json:"tag"`
	}{create}

	data, err := c.post(ctx, apiPrefix+"/tags", body)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Tag](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created tag: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// DeleteTag deletes a tag. Devices carrying the tag are not deleted.
func (c *Client) DeleteTag(ctx context.Context, tagID string) error {
	if tagID == "" {
		return ErrEmptyTagID
	}
	_, err := c.delete(ctx, apiPrefix+"/tags/"+tagID)
	return err
}
