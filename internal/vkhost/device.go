package vkhost

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/vkngwrapper/gpuselect/internal/bootstrap"
)

type physicalDevice struct {
	instanceDriver core1_0.CoreInstanceDriver
	device         core1_0.PhysicalDevice
}

func (p *physicalDevice) Properties() (*bootstrap.DeviceProperties, error) {
	properties, err := p.instanceDriver.GetPhysicalDeviceProperties(p.device)
	if err != nil {
		return nil, err
	}

	return &bootstrap.DeviceProperties{
		Name:              properties.DriverName,
		Type:              properties.DriverType.String(),
		VendorID:          properties.VendorID,
		DeviceID:          properties.DeviceID,
		APIVersion:        properties.APIVersion.String(),
		DriverVersion:     properties.DriverVersion.String(),
		PipelineCacheUUID: properties.PipelineCacheUUID,
	}, nil
}

func (p *physicalDevice) QueueFamilies() []bootstrap.QueueFamily {
	queueFamilies := p.instanceDriver.GetPhysicalDeviceQueueFamilyProperties(p.device)

	families := make([]bootstrap.QueueFamily, 0, len(queueFamilies))
	for queueFamilyIdx, queueFamily := range queueFamilies {
		families = append(families, bootstrap.QueueFamily{
			Index:        queueFamilyIdx,
			QueueCount:   int(queueFamily.QueueCount),
			Capabilities: queueCapabilities(queueFamily.QueueFlags),
		})
	}
	return families
}

func queueCapabilities(flags core1_0.QueueFlags) bootstrap.QueueCapabilities {
	var caps bootstrap.QueueCapabilities
	if (flags & core1_0.QueueGraphics) != 0 {
		caps |= bootstrap.QueueGraphics
	}
	if (flags & core1_0.QueueCompute) != 0 {
		caps |= bootstrap.QueueCompute
	}
	if (flags & core1_0.QueueTransfer) != 0 {
		caps |= bootstrap.QueueTransfer
	}
	if (flags & core1_0.QueueSparseBinding) != 0 {
		caps |= bootstrap.QueueSparseBinding
	}
	return caps
}

type device struct {
	deviceDriver core1_0.CoreDeviceDriver
	destroyed    bool
}

func (d *device) Queue(familyIndex, queueIndex int) bootstrap.Queue {
	return &queue{
		handle:      d.deviceDriver.GetQueue(familyIndex, queueIndex),
		familyIndex: familyIndex,
		queueIndex:  queueIndex,
	}
}

func (d *device) WaitIdle() error {
	if d.destroyed {
		return errors.New("device already destroyed")
	}
	_, err := d.deviceDriver.DeviceWaitIdle()
	return err
}

func (d *device) Destroy() {
	if d.destroyed {
		return
	}
	d.deviceDriver.DestroyDevice(nil)
	d.destroyed = true
}

type queue struct {
	handle      core1_0.Queue
	familyIndex int
	queueIndex  int
}

func (q *queue) FamilyIndex() int { return q.familyIndex }
func (q *queue) QueueIndex() int  { return q.queueIndex }

// Handle returns the vkngwrapper queue for submitting work.
func (q *queue) Handle() core1_0.Queue { return q.handle }
