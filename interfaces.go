package element

import (
	"context"
	"fmt"
)

// ListInterfaces returns all interfaces of a device. The interface list is
// small and unpaginated.
func (c *Client) ListInterfaces(ctx context.Context, deviceID string) ([]DeviceInterface, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	data, err := c.get(ctx, apiPrefix+"/devices/"+deviceID+"/interfaces", nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[[]DeviceInterface](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interface list: %w (body: %s)", err, truncatePreview(data))
	}
	return env.Body, nil
}

// GetInterface returns a single device interface by ID.
func (c *Client) GetInterface(ctx context.Context, deviceID, interfaceID string) (*DeviceInterface, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	if interfaceID == "" {
		return nil, ErrEmptyInterfaceID
	}
	data, err := c.get(ctx, apiPrefix+"/devices/"+deviceID+"/interfaces/"+interfaceID, nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[DeviceInterface](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse interface: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// CreateInterface attaches a new interface to a device.
func (c *Client) CreateInterface(ctx context.Context, deviceID string, create *InterfaceCreate) (*DeviceInterface, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}

	body := struct {
		Interface *InterfaceCreate `json:"interface"`
	}{create}

	data, err := c.post(ctx, apiPrefix+"/devices/"+deviceID+"/interfaces", body)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[DeviceInterface](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created interface: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// DeleteInterface removes an interface from a device.
func (c *Client) DeleteInterface(ctx context.Context, deviceID, interfaceID string) error {
	if deviceID == "" {
		return ErrEmptyDeviceID
	}
	if interfaceID == "" {
		return ErrEmptyInterfaceID
	}
	_, err := c.delete(ctx, apiPrefix+"/devices/"+deviceID+"/interfaces/"+interfaceID)
	return err
}
