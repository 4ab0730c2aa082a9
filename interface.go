package element

import (
	"context"
	"iter"
)

// ElementClient defines the interface for ELEMENT API operations.
// Client implements this interface, enabling mocking for tests.
type ElementClient interface {
	// Device operations
	ListDevices(ctx context.Context, opts *ListOptions) ([]Device, error)
	StreamDevices(ctx context.Context, opts *ListOptions, fn func([]Device) error) error
	Devices(ctx context.Context, opts *ListOptions) iter.Seq2[Device, error]
	GetDevice(ctx context.Context, deviceID string) (*Device, error)
	CreateDevice(ctx context.Context, create *DeviceCreate) (*Device, error)
	UpdateDevice(ctx context.Context, deviceID string, update *DeviceUpdate) (*Device, error)
	DeleteDevice(ctx context.Context, deviceID string) error
	ListDevicesByTag(ctx context.Context, tagID string, opts *ListOptions) ([]Device, error)

	// Tag operations
	ListTags(ctx context.Context, opts *ListOptions) ([]Tag, error)
	GetTag(ctx context.Context, tagID string) (*Tag, error)
	CreateTag(ctx context.Context, create *TagCreate) (*Tag, error)
	DeleteTag(ctx context.Context, tagID string) error

	// Reading operations
	ListReadings(ctx context.Context, deviceID string, opts *ListOptions) ([]Reading, error)
	StreamReadings(ctx context.Context, deviceID string, opts *ListOptions, fn func([]Reading) error) error
	Readings(ctx context.Context, deviceID string, opts *ListOptions) iter.Seq2[Reading, error]
	ListTagReadings(ctx context.Context, tagID string, opts *ListOptions) ([]Reading, error)
	StreamTagReadings(ctx context.Context, tagID string, opts *ListOptions, fn func([]Reading) error) error

	// Packet operations
	ListPackets(ctx context.Context, deviceID string, opts *ListOptions) ([]Packet, error)
	StreamPackets(ctx context.Context, deviceID string, opts *ListOptions, fn func([]Packet) error) error
	Packets(ctx context.Context, deviceID string, opts *ListOptions) iter.Seq2[Packet, error]
	ListTagPackets(ctx context.Context, tagID string, opts *ListOptions) ([]Packet, error)
	CreatePacket(ctx context.Context, deviceID string, create *PacketCreate) (*Packet, error)

	// Interface operations
	ListInterfaces(ctx context.Context, deviceID string) ([]DeviceInterface, error)
	GetInterface(ctx context.Context, deviceID, interfaceID string) (*DeviceInterface, error)
	CreateInterface(ctx context.Context, deviceID string, create *InterfaceCreate) (*DeviceInterface, error)
	DeleteInterface(ctx context.Context, deviceID, interfaceID string) error

	// Action operations
	ListActions(ctx context.Context, deviceID string, opts *ListOptions) ([]Action, error)
	GetAction(ctx context.Context, deviceID, actionID string) (*Action, error)
	CreateAction(ctx context.Context, deviceID, interfaceID string, create *ActionCreate) (*Action, error)
	SendDownFrame(ctx context.Context, deviceID, interfaceID, payload string) (*Action, error)

	// Rate limit state
	LastRateLimit() RateLimitInfo
}

// Compile-time check that Client satisfies ElementClient.
var _ ElementClient = (*Client)(nil)
