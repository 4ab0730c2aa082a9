package element

import (
	"context"
	"fmt"
)

// devicePage fetches one page of devices.
func (c *Client) devicePage(ctx context.Context, opts *ListOptions) (*envelope[[]Device], error) {
	data, err := c.get(ctx, apiPrefix+"/devices", opts.Values())
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[[]Device](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device list: %w (body: %s)", err, truncatePreview(data))
	}
	return env, nil
}

// ListDevices returns devices matching the given options. With an explicit
// limit of at most 100 a single page request is issued and any continuation
// cursor is ignored; otherwise all pages are fetched and concatenated.
func (c *Client) ListDevices(ctx context.Context, opts *ListOptions) ([]Device, error) {
	if hasFastPathLimit(opts) {
		env, err := c.devicePage(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, c.devicePage)
}

// StreamDevices walks all device pages, handing each non-empty page to fn.
// The next page is not requested until fn returns.
func (c *Client) StreamDevices(ctx context.Context, opts *ListOptions, fn func([]Device) error) error {
	return paginateStream(ctx, opts, c.devicePage, fn)
}

// GetDevice returns a single device by ID or slug.
func (c *Client) GetDevice(ctx context.Context, deviceID string) (*Device, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	data, err := c.get(ctx, apiPrefix+"/devices/"+deviceID, nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Device](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// CreateDevice creates a new device.
func (c *Client) CreateDevice(ctx context.Context, create *DeviceCreate) (*Device, error) {
	body := struct {
		Device *DeviceCreate `json:"device"`
	}{create}

	data, err := c.post(ctx, apiPrefix+"/devices", body)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Device](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created device: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// UpdateDevice updates an existing device.
func (c *Client) UpdateDevice(ctx context.Context, deviceID string, update *DeviceUpdate) (*Device, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}

	body := struct {
		Device *DeviceUpdate `json:"device"`
	}{update}

	data, err := c.put(ctx, apiPrefix+"/devices/"+deviceID, body)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Device](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated device: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// DeleteDevice deletes a device.
func (c *Client) DeleteDevice(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return ErrEmptyDeviceID
	}
	_, err := c.delete(ctx, apiPrefix+"/devices/"+deviceID)
	return err
}

// ListDevicesByTag returns all devices carrying the given tag, with the
// same fast-path/full-walk split as ListDevices.
func (c *Client) ListDevicesByTag(ctx context.Context, tagID string, opts *ListOptions) ([]Device, error) {
	if tagID == "" {
		return nil, ErrEmptyTagID
	}

	fetch := func(ctx context.Context, opts *ListOptions) (*envelope[[]Device], error) {
		data, err := c.get(ctx, apiPrefix+"/tags/"+tagID+"/devices", opts.Values())
		if err != nil {
			return nil, err
		}
		env, err := decodeEnvelope[[]Device](data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse device list: %w (body: %s)", err, truncatePreview(data))
		}
		return env, nil
	}

	if hasFastPathLimit(opts) {
		env, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, fetch)
}

// FilterDevices returns devices matching the given filter function.
func FilterDevices(devices []Device, filter func(Device) bool) []Device {
	result := make([]Device, 0, len(devices))
	for _, d := range devices {
		if filter(d) {
			result = append(result, d)
		}
	}
	return result
}

// FindDeviceByName returns the first device matching the given name.
// Returns a pointer to the device in the slice, or nil if not found.
func FindDeviceByName(devices []Device, name string) *Device {
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i]
		}
	}
	return nil
}
