package element

import "encoding/json"

// Data represents flexible nested payload data as returned by the parser
// pipeline. Reading data and packet fields vary by device profile, so the
// shape is left open and accessed via the Get* helpers.
type Data map[string]any

// Device represents an ELEMENT device with all available API fields.
type Device struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Slug       string            `json:"slug,omitempty"`
	ParserID   string            `json:"parser_id,omitempty"`
	MandateID  string            `json:"mandate_id,omitempty"`
	Tags       []Tag             `json:"tags,omitempty"`
	Interfaces []DeviceInterface `json:"interfaces,omitempty"`
	Fields     Data              `json:"fields,omitempty"`
	Profile    Data              `json:"profile_data,omitempty"`
	Location   *Location         `json:"location,omitempty"`
	InsertedAt string            `json:"inserted_at,omitempty"`
	UpdatedAt  string            `json:"updated_at,omitempty"`
}

// Location is a geographic point attached to a device.
type Location struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

// Tag groups devices for scoped queries and stream subscriptions.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	MandateID   string `json:"mandate_id,omitempty"`
	InsertedAt  string `json:"inserted_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Reading is a parsed data point produced from a device packet.
type Reading struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"device_id,omitempty"`
	PacketID   string    `json:"packet_id,omitempty"`
	ParserID   string    `json:"parser_id,omitempty"`
	Data       Data      `json:"data,omitempty"`
	Location   *Location `json:"location,omitempty"`
	MeasuredAt string    `json:"measured_at,omitempty"`
	InsertedAt string    `json:"inserted_at,omitempty"`
}

// Packet is a raw uplink or downlink frame exchanged with a device.
type Packet struct {
	ID              string `json:"id"`
	DeviceID        string `json:"device_id,omitempty"`
	InterfaceID     string `json:"interface_id,omitempty"`
	Type            string `json:"packet_type,omitempty"`
	Payload         string `json:"payload,omitempty"`
	PayloadEncoding string `json:"payload_encoding,omitempty"`
	Meta            Data   `json:"meta,omitempty"`
	TransceivedAt   string `json:"transceived_at,omitempty"`
	InsertedAt      string `json:"inserted_at,omitempty"`
}

// DeviceInterface binds a device to a network driver instance.
type DeviceInterface struct {
	ID               string `json:"id"`
	DeviceID         string `json:"device_id,omitempty"`
	Name             string `json:"name,omitempty"`
	DriverInstanceID string `json:"driver_instance_id,omitempty"`
	Opts             Data   `json:"opts,omitempty"`
	Enabled          bool   `json:"enabled,omitempty"`
	InsertedAt       string `json:"inserted_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// Action is an asynchronous command issued against a device interface,
// such as a downlink frame send.
type Action struct {
	ID          string `json:"id"`
	DeviceID    string `json:"device_id,omitempty"`
	InterfaceID string `json:"interface_id,omitempty"`
	Type        string `json:"type,omitempty"`
	State       string `json:"state,omitempty"`
	Opts        Data   `json:"opts,omitempty"`
	Result      Data   `json:"result,omitempty"`
	InsertedAt  string `json:"inserted_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// DeviceCreate is the request shape for creating a device.
type DeviceCreate struct {
	Name     string   `json:"name"`
	ParserID string   `json:"parser_id,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Fields   Data     `json:"fields,omitempty"`
}

// DeviceUpdate is the request shape for updating a device.
type DeviceUpdate struct {
	Name     string `json:"name,omitempty"`
	ParserID string `json:"parser_id,omitempty"`
	Fields   Data   `json:"fields,omitempty"`
}

// TagCreate is the request shape for creating a tag.
type TagCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// InterfaceCreate is the request shape for creating a device interface.
type InterfaceCreate struct {
	Name             string `json:"name,omitempty"`
	DriverInstanceID string `json:"driver_instance_id"`
	Opts             Data   `json:"opts,omitempty"`
	Enabled          *bool  `json:"enabled,omitempty"`
}

// ActionCreate is the request shape for creating an interface action,
// for example {"type": "send_down_frame", "opts": {"payload": "0102"}}.
type ActionCreate struct {
	Type string `json:"type"`
	Opts Data   `json:"opts,omitempty"`
}

// PacketCreate is the request shape for enqueueing a downlink packet.
type PacketCreate struct {
	InterfaceID     string `json:"interface_id,omitempty"`
	Payload         string `json:"payload"`
	PayloadEncoding string `json:"payload_encoding,omitempty"`
	Meta            Data   `json:"meta,omitempty"`
}

// envelope is the ELEMENT response wrapper. Every API response carries the
// payload under "body"; list responses additionally carry a continuation
// cursor under "retrieve_after_id" when more pages exist. The cursor's
// absence is the only end-of-sequence signal.
type envelope[T any] struct {
	Status          int    `json:"status,omitempty"`
	OK              bool   `json:"ok,omitempty"`
	Body            T      `json:"body"`
	RetrieveAfterID string `json:"retrieve_after_id,omitempty"`
}

// decodeEnvelope unmarshals an API response envelope.
func decodeEnvelope[T any](data []byte) (*envelope[T], error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
