package element

import (
	"context"
	"fmt"
)

// actionPage returns a pageFunc over one device's actions.
func (c *Client) actionPage(deviceID string) pageFunc[Action] {
	return func(ctx context.Context, opts *ListOptions) (*envelope[[]Action], error) {
		data, err := c.get(ctx, apiPrefix+"/devices/"+deviceID+"/actions", opts.Values())
		if err != nil {
			return nil, err
		}
		env, err := decodeEnvelope[[]Action](data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse action list: %w (body: %s)", err, truncatePreview(data))
		}
		return env, nil
	}
}

// ListActions returns a device's actions, with the same fast-path/full-walk
// split as ListDevices.
func (c *Client) ListActions(ctx context.Context, deviceID string, opts *ListOptions) ([]Action, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	fetch := c.actionPage(deviceID)
	if hasFastPathLimit(opts) {
		env, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, fetch)
}

// GetAction returns a single action by ID, including its current state.
func (c *Client) GetAction(ctx context.Context, deviceID, actionID string) (*Action, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	if actionID == "" {
		return nil, ErrEmptyActionID
	}
	data, err := c.get(ctx, apiPrefix+"/devices/"+deviceID+"/actions/"+actionID, nil)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Action](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse action: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// CreateAction issues an asynchronous command against a device interface,
// such as a send_down_frame. The returned action carries the server-assigned
// ID; poll GetAction for its state.
func (c *Client) CreateAction(ctx context.Context, deviceID, interfaceID string, create *ActionCreate) (*Action, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	if interfaceID == "" {
		return nil, ErrEmptyInterfaceID
	}

	body := struct {
		Action *ActionCreate `json:"action"`
	}{create}

	data, err := c.post(ctx, apiPrefix+"/devices/"+deviceID+"/interfaces/"+interfaceID+"/actions", body)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Action](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created action: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}

// SendDownFrame is a convenience wrapper around CreateAction for the common
// send_down_frame action type.
func (c *Client) SendDownFrame(ctx context.Context, deviceID, interfaceID, payload string) (*Action, error) {
	return c.CreateAction(ctx, deviceID, interfaceID, &ActionCreate{
		Type: "send_down_frame",
		Opts: Data{"payload": payload},
	})
}
