// Package vkhost implements the bootstrap interfaces on top of vkngwrapper,
// loading Vulkan through SDL.
package vkhost

import (
	"github.com/cockroachdb/errors"
	"github.com/loov/hrtime"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"

	"github.com/vkngwrapper/gpuselect/internal/bootstrap"
	"github.com/vkngwrapper/gpuselect/internal/config"
	"github.com/vkngwrapper/gpuselect/internal/deletion"
)

// Host owns the Vulkan instance and everything created from it. Destroy
// releases objects in reverse creation order.
type Host struct {
	globalDriver   core1_0.GlobalDriver
	instanceDriver core1_0.CoreInstanceDriver

	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger

	deletion deletion.Queue
}

var _ bootstrap.Instance = (*Host)(nil)

// Open loads the Vulkan library and creates an instance. Failures to load
// the library or create the instance are marked with
// bootstrap.ErrAPIUnavailable; missing layers and extensions are not.
func Open(cfg config.Config) (*Host, error) {
	h := &Host{}

	err := h.loadDriver()
	if err != nil {
		h.Destroy()
		return nil, errors.Mark(err, bootstrap.ErrAPIUnavailable)
	}

	err = h.createInstance(cfg)
	if err != nil {
		h.Destroy()
		return nil, err
	}

	if cfg.Validation {
		err = h.setupDebugMessenger()
		if err != nil {
			h.Destroy()
			return nil, err
		}
	}

	return h, nil
}

func (h *Host) loadDriver() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "initializing sdl video")
	}
	h.deletion.Push("sdl", sdl.Quit)

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return errors.Wrap(err, "loading vulkan library")
	}
	h.deletion.Push("vulkan library", sdl.VulkanUnloadLibrary)

	var err error
	h.globalDriver, err = core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return errors.Wrap(err, "creating vulkan driver")
	}

	log.Debug("loaded vulkan library")
	return nil
}

func (h *Host) createInstance(cfg config.Config) error {
	start := hrtime.Now()

	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    cfg.AppName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         "No Engine",
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_0,
	}

	extensions, _, err := h.globalDriver.AvailableExtensions()
	if err != nil {
		return errors.Mark(errors.Wrap(err, "listing instance extensions"), bootstrap.ErrAPIUnavailable)
	}

	var portability bool
	instanceOptions.EnabledExtensionNames, portability, err = instanceExtensions(extensions, cfg.Validation)
	if err != nil {
		return err
	}
	if portability {
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if layerNames := cfg.Layers(); len(layerNames) > 0 {
		layers, _, err := h.globalDriver.AvailableLayers()
		if err != nil {
			return errors.Wrap(err, "listing instance layers")
		}

		instanceOptions.EnabledLayerNames, err = instanceLayers(layers, layerNames)
		if err != nil {
			return err
		}
	}

	if cfg.Validation {
		instanceOptions.Next = debugMessengerOptions()
	}

	instance, _, err := h.globalDriver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "creating instance"), bootstrap.ErrAPIUnavailable)
	}

	h.instanceDriver, err = h.globalDriver.BuildInstanceDriver(instance)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "building instance driver"), bootstrap.ErrAPIUnavailable)
	}
	h.deletion.Push("instance", func() {
		h.instanceDriver.DestroyInstance(nil)
	})

	log.WithFields(log.Fields{
		"extensions": instanceOptions.EnabledExtensionNames,
		"layers":     instanceOptions.EnabledLayerNames,
		"elapsed":    hrtime.Since(start),
	}).Debug("created instance")
	return nil
}

func (h *Host) setupDebugMessenger() error {
	var err error
	h.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(h.instanceDriver)
	h.debugMessenger, _, err = h.debugDriver.CreateDebugUtilsMessenger(nil, debugMessengerOptions())
	if err != nil {
		return errors.Wrap(err, "creating debug messenger")
	}
	h.deletion.Push("debug messenger", func() {
		h.debugDriver.DestroyDebugUtilsMessenger(h.debugMessenger, nil)
	})

	return nil
}

func (h *Host) PhysicalDevices() ([]bootstrap.PhysicalDevice, error) {
	physicalDevices, _, err := h.instanceDriver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	devices := make([]bootstrap.PhysicalDevice, 0, len(physicalDevices))
	for _, device := range physicalDevices {
		devices = append(devices, &physicalDevice{
			instanceDriver: h.instanceDriver,
			device:         device,
		})
	}
	return devices, nil
}

func (h *Host) CreateDevice(physical bootstrap.PhysicalDevice, request bootstrap.DeviceRequest) (bootstrap.Device, error) {
	p, ok := physical.(*physicalDevice)
	if !ok {
		return nil, errors.Newf("physical device %T was not enumerated by this host", physical)
	}

	extensions, _, err := h.instanceDriver.EnumerateDeviceExtensionProperties(p.device)
	if err != nil {
		return nil, errors.Wrap(err, "listing device extensions")
	}

	handle, _, err := h.instanceDriver.CreateDevice(p.device, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: []core1_0.DeviceQueueCreateInfo{
			{
				QueueFamilyIndex: request.QueueFamilyIndex,
				QueuePriorities:  request.QueuePriorities,
			},
		},
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: deviceExtensions(extensions),
	})
	if err != nil {
		return nil, err
	}

	deviceDriver, err := h.instanceDriver.BuildDeviceDriver(handle)
	if err != nil {
		return nil, errors.Wrap(err, "building device driver")
	}

	d := &device{deviceDriver: deviceDriver}
	h.deletion.Push("device", d.Destroy)
	return d, nil
}

// Destroy releases every object created through h. It is safe to call on a
// partially opened host.
func (h *Host) Destroy() {
	h.deletion.Flush()
}
