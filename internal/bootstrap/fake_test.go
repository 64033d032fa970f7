package bootstrap_test

import (
	"github.com/cockroachdb/errors"

	"github.com/vkngwrapper/gpuselect/internal/bootstrap"
)

type fakeInstance struct {
	devices     []bootstrap.PhysicalDevice
	enumerate   error
	createError error

	requests  []bootstrap.DeviceRequest
	created   []*fakeDevice
	destroyed bool
}

func (i *fakeInstance) PhysicalDevices() ([]bootstrap.PhysicalDevice, error) {
	if i.enumerate != nil {
		return nil, i.enumerate
	}
	return i.devices, nil
}

func (i *fakeInstance) CreateDevice(physical bootstrap.PhysicalDevice, request bootstrap.DeviceRequest) (bootstrap.Device, error) {
	i.requests = append(i.requests, request)
	if i.createError != nil {
		return nil, i.createError
	}

	device := &fakeDevice{physical: physical.(*fakePhysicalDevice), request: request}
	i.created = append(i.created, device)
	return device, nil
}

func (i *fakeInstance) Destroy() {
	i.destroyed = true
}

type fakePhysicalDevice struct {
	name     string
	families []bootstrap.QueueFamily
	propsErr error
}

func (d *fakePhysicalDevice) Properties() (*bootstrap.DeviceProperties, error) {
	if d.propsErr != nil {
		return nil, d.propsErr
	}
	return &bootstrap.DeviceProperties{Name: d.name, Type: "Discrete GPU"}, nil
}

func (d *fakePhysicalDevice) QueueFamilies() []bootstrap.QueueFamily {
	return d.families
}

type fakeDevice struct {
	physical  *fakePhysicalDevice
	request   bootstrap.DeviceRequest
	destroyed bool
}

func (d *fakeDevice) Queue(familyIndex, queueIndex int) bootstrap.Queue {
	return fakeQueue{family: familyIndex, index: queueIndex}
}

func (d *fakeDevice) WaitIdle() error {
	if d.destroyed {
		return errors.New("device destroyed")
	}
	return nil
}

func (d *fakeDevice) Destroy() {
	d.destroyed = true
}

type fakeQueue struct {
	family, index int
}

func (q fakeQueue) FamilyIndex() int { return q.family }
func (q fakeQueue) QueueIndex() int  { return q.index }

func graphicsFamily(index, count int) bootstrap.QueueFamily {
	return bootstrap.QueueFamily{
		Index:        index,
		QueueCount:   count,
		Capabilities: bootstrap.QueueGraphics | bootstrap.QueueCompute | bootstrap.QueueTransfer,
	}
}

func computeFamily(index, count int) bootstrap.QueueFamily {
	return bootstrap.QueueFamily{
		Index:        index,
		QueueCount:   count,
		Capabilities: bootstrap.QueueCompute | bootstrap.QueueTransfer,
	}
}
