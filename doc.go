// Package element provides a Go client library for the ELEMENT IoT platform.
//
// The library covers the paginated REST API (devices, tags, readings,
// packets, interfaces, actions) and the push-based WebSocket event feed.
// Every REST request is authenticated with the account API key and gated by
// the server-reported rate limit; list endpoints are paginated with an
// opaque continuation cursor.
//
// # Basic Usage
//
// List all devices:
//
//	client, err := element.NewClient("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	devices, err := client.ListDevices(ctx, nil)
//	for _, device := range devices {
//	    fmt.Printf("Device: %s (%s)\n", device.Name, device.ID)
//	}
//
// Fetch a bounded result set with a single request:
//
//	devices, err := client.ListDevices(ctx, &element.ListOptions{Limit: 50})
//
// # Pagination
//
// List methods without an explicit limit of 100 or less walk the full
// cursor chain and return the concatenated result. For large result sets,
// stream page by page instead; the next page is not requested until the
// callback returns:
//
//	err := client.StreamReadings(ctx, deviceID, nil, func(page []element.Reading) error {
//	    for _, r := range page {
//	        process(r)
//	    }
//	    return nil
//	})
//
// Or iterate item by item:
//
//	for reading, err := range client.Readings(ctx, deviceID, nil) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    process(reading)
//	}
//
// # Rate Limiting
//
// The client tracks the X-Ratelimit-Remaining and X-Ratelimit-Reset
// response headers. When the remaining budget runs low, outgoing requests
// are delayed until the window resets; requests are never rejected. Rate
// limit exhaustion is therefore handled by waiting, and retry policy around
// failed requests stays with the caller.
//
// # Event Socket
//
// The socket client maintains one long-lived WebSocket connection to a
// readings or packets feed, optionally scoped to a tag:
//
//	socket, err := element.NewSocket("your-api-key", element.StreamReadings,
//	    element.WithTag("heat-meters"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	socket.OnReadings(func(body json.RawMessage) {
//	    var reading element.Reading
//	    if err := json.Unmarshal(body, &reading); err == nil {
//	        process(reading)
//	    }
//	})
//	if err := socket.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer socket.Disconnect()
//	<-socket.Done()
//
// The socket does not reconnect after a drop; construct a new Socket to
// resume the stream.
package element
