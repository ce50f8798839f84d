// Package tlmt provides anonymous usage telemetry. It is opt-out via the
// DISABLE_TELEMETRY environment variable and never sends user data, only an
// anonymized machine identifier plus event properties.
package tlmt

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/host"
)

var (
	once       sync.Once
	identifier machineIdentifier
)

type Event struct {
	AnonymousID string
	Name        string
	Properties  map[string]any
}

func NewEvent(name string, props map[string]any) Event {
	machine := generateMachineID()

	properties := make(map[string]any, len(machine.meta)+len(props))

	for k, v := range machine.meta {
		properties[k] = v
	}

	for k, v := range props {
		properties[k] = v
	}

	return Event{
		AnonymousID: machine.id,
		Name:        name,
		Properties:  properties,
	}
}

type Telemetry interface {
	Send(ctx context.Context, event Event) error
	Close() error
}

type machineIdentifier struct {
	id   string
	meta map[string]any
}

// generateMachineID derives a stable anonymous identifier from local host
// facts only. No network call is made for it.
func generateMachineID() machineIdentifier {
	once.Do(func() {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = uuid.New().String()
		}

		hash := sha256.New()
		hash.Write([]byte(hostname))
		hash.Write([]byte(runtime.GOARCH))
		hash.Write([]byte(runtime.GOOS))
		hash.Write([]byte(runtime.Version()))

		id := fmt.Sprintf("%x", hash.Sum(nil))

		meta := make(map[string]any)

		info, err := host.Info()
		if err == nil {
			meta["os"] = info.OS
			meta["platform"] = info.Platform
			meta["platform_family"] = info.PlatformFamily
			meta["platform_version"] = info.PlatformVersion
		}

		identifier.id = id
		identifier.meta = meta
	})

	return identifier
}
