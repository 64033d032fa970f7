package bootstrap

import "github.com/google/uuid"

// Instance is the root of a graphics API session. Physical devices are
// enumerated from it and logical devices are created through it.
type Instance interface {
	PhysicalDevices() ([]PhysicalDevice, error)
	CreateDevice(physical PhysicalDevice, request DeviceRequest) (Device, error)
	Destroy()
}

// PhysicalDevice is a GPU visible to an Instance.
type PhysicalDevice interface {
	Properties() (*DeviceProperties, error)
	QueueFamilies() []QueueFamily
}

// DeviceProperties describes a physical device.
type DeviceProperties struct {
	Name              string
	Type              string
	VendorID          uint32
	DeviceID          uint32
	APIVersion        string
	DriverVersion     string
	PipelineCacheUUID uuid.UUID
}

type QueueCapabilities uint32

const (
	QueueGraphics QueueCapabilities = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

func (c QueueCapabilities) Has(flag QueueCapabilities) bool {
	return c&flag == flag
}

// QueueFamily is a group of queues on a physical device that share
// capabilities.
type QueueFamily struct {
	Index        int
	QueueCount   int
	Capabilities QueueCapabilities
}

func (f QueueFamily) SupportsGraphics() bool {
	return f.Capabilities.Has(QueueGraphics)
}

// DeviceRequest names the queues a logical device should be created with.
// One queue is created per entry in QueuePriorities.
type DeviceRequest struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

// Device is a logical device bound to one physical device.
type Device interface {
	Queue(familyIndex, queueIndex int) Queue
	WaitIdle() error
	Destroy()
}

type Queue interface {
	FamilyIndex() int
	QueueIndex() int
}
