package element

import (
	"context"
	"fmt"
)

// packetPage returns a pageFunc over one device's packets.
func (c *Client) packetPage(deviceID string) pageFunc[Packet] {
	return func(ctx context.Context, opts *ListOptions) (*envelope[[]Packet], error) {
		data, err := c.get(ctx, apiPrefix+"/devices/"+deviceID+"/packets", opts.Values())
		if err != nil {
			return nil, err
		}
		env, err := decodeEnvelope[[]Packet](data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse packet list: %w (body: %s)", err, truncatePreview(data))
		}
		return env, nil
	}
}

// tagPacketPage returns a pageFunc over packets of all devices carrying a tag.
func (c *Client) tagPacketPage(tagID string) pageFunc[Packet] {
	return func(ctx context.Context, opts *ListOptions) (*envelope[[]Packet], error) {
		data, err := c.get(ctx, apiPrefix+"/tags/"+tagID+"/packets", opts.Values())
		if err != nil {
			return nil, err
		}
		env, err := decodeEnvelope[[]Packet](data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse packet list: %w (body: %s)", err, truncatePreview(data))
		}
		return env, nil
	}
}

// ListPackets returns a device's packets, with the same fast-path/full-walk
// split as ListDevices.
func (c *Client) ListPackets(ctx context.Context, deviceID string, opts *ListOptions) ([]Packet, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	fetch := c.packetPage(deviceID)
	if hasFastPathLimit(opts) {
		env, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, fetch)
}

// StreamPackets walks a device's packet pages, handing each non-empty page
// to fn. The next page is not requested until fn returns.
func (c *Client) StreamPackets(ctx context.Context, deviceID string, opts *ListOptions, fn func([]Packet) error) error {
	if deviceID == "" {
		return ErrEmptyDeviceID
	}
	return paginateStream(ctx, opts, c.packetPage(deviceID), fn)
}

// ListTagPackets returns packets from every device carrying the given tag.
func (c *Client) ListTagPackets(ctx context.Context, tagID string, opts *ListOptions) ([]Packet, error) {
	if tagID == "" {
		return nil, ErrEmptyTagID
	}
	fetch := c.tagPacketPage(tagID)
	if hasFastPathLimit(opts) {
		env, err := fetch(ctx, opts)
		if err != nil {
			return nil, err
		}
		return env.Body, nil
	}
	return paginate(ctx, opts, fetch)
}

// CreatePacket enqueues a downlink packet for transmission to a device.
func (c *Client) CreatePacket(ctx context.Context, deviceID string, create *PacketCreate) (*Packet, error) {
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}

	body := struct {
		Packet *PacketCreate `json:"packet"`
	}{create}

	data, err := c.post(ctx, apiPrefix+"/devices/"+deviceID+"/packets", body)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[Packet](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created packet: %w (body: %s)", err, truncatePreview(data))
	}
	return &env.Body, nil
}
