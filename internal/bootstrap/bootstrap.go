package bootstrap

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// QueueCount is the number of queues requested from the chosen family.
	QueueCount int
	// QueuePriority is applied to every requested queue.
	QueuePriority float32
}

func DefaultOptions() Options {
	return Options{
		QueueCount:    1,
		QueuePriority: 1.0,
	}
}

func (o Options) Validate() error {
	if o.QueueCount < 1 {
		return errors.Wrapf(ErrInvalidOptions, "queue count must be at least 1, got %d", o.QueueCount)
	}
	if !(o.QueuePriority >= 0 && o.QueuePriority <= 1) {
		return errors.Wrapf(ErrInvalidOptions, "queue priority must be within [0, 1], got %g", o.QueuePriority)
	}
	return nil
}

// Result holds everything Run selected and created.
type Result struct {
	PhysicalDevice PhysicalDevice
	Properties     *DeviceProperties
	QueueFamily    QueueFamily
	Device         Device
	Queues         []Queue
}

// Run enumerates the physical devices of inst, picks the first one, picks
// its first graphics-capable queue family and creates a logical device on
// it. Selection progress is written to out as plain text lines.
func Run(inst Instance, out io.Writer, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := hrtime.Now()
	devices, err := inst.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating physical devices")
	}
	log.WithFields(log.Fields{
		"count":   len(devices),
		"elapsed": hrtime.Since(start),
	}).Debug("enumerated physical devices")

	physical, props, err := SelectPhysicalDevice(devices, out)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"name":     props.Name,
		"type":     props.Type,
		"vendorID": fmt.Sprintf("0x%x", props.VendorID),
		"deviceID": fmt.Sprintf("0x%x", props.DeviceID),
		"api":      props.APIVersion,
		"driver":   props.DriverVersion,
		"cache":    props.PipelineCacheUUID,
	}).Debug("physical device chosen")

	family, err := SelectQueueFamily(physical.QueueFamilies(), out)
	if err != nil {
		return nil, errors.Wrapf(err, "physical device %q", props.Name)
	}

	if opts.QueueCount > family.QueueCount {
		return nil, errors.Wrapf(ErrQueueCountExceeded, "requested %d queue(s), family %d has %d",
			opts.QueueCount, family.Index, family.QueueCount)
	}

	priorities := make([]float32, opts.QueueCount)
	for i := range priorities {
		priorities[i] = opts.QueuePriority
	}

	start = hrtime.Now()
	device, err := inst.CreateDevice(physical, DeviceRequest{
		QueueFamilyIndex: family.Index,
		QueuePriorities:  priorities,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create device")
	}
	log.WithFields(log.Fields{
		"family":  family.Index,
		"queues":  len(priorities),
		"elapsed": hrtime.Since(start),
	}).Debug("created logical device")

	queues := make([]Queue, 0, len(priorities))
	for i := range priorities {
		queues = append(queues, device.Queue(family.Index, i))
	}

	return &Result{
		PhysicalDevice: physical,
		Properties:     props,
		QueueFamily:    family,
		Device:         device,
		Queues:         queues,
	}, nil
}

// SelectPhysicalDevice prints the name of every device and returns the
// first one along with its properties.
func SelectPhysicalDevice(devices []PhysicalDevice, out io.Writer) (PhysicalDevice, *DeviceProperties, error) {
	var first *DeviceProperties
	for idx, device := range devices {
		props, err := device.Properties()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "reading properties of physical device %d", idx)
		}
		fmt.Fprintf(out, "Found Physical Device: %s\n", props.Name)

		if first == nil {
			first = props
		}
	}

	if first == nil {
		return nil, nil, ErrNoPhysicalDevice
	}

	fmt.Fprintf(out, "Physical Device Chosen: %s\n", first.Name)
	return devices[0], first, nil
}

// SelectQueueFamily prints the queue count of every family and returns the
// first one that supports graphics.
func SelectQueueFamily(families []QueueFamily, out io.Writer) (QueueFamily, error) {
	for _, family := range families {
		fmt.Fprintf(out, "Found a queue family with %d queue(s)\n", family.QueueCount)
	}

	for _, family := range families {
		if family.SupportsGraphics() {
			return family, nil
		}
	}

	return QueueFamily{}, ErrNoGraphicsQueueFamily
}
