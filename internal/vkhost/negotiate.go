package vkhost

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
)

// instanceExtensions picks the instance extensions to enable from what the
// loader offers. Portability enumeration is optional; debug utils is
// required when debug is set.
func instanceExtensions[T any](available map[string]T, debug bool) (names []string, portability bool, err error) {
	if debug {
		if _, ok := available[ext_debug_utils.ExtensionName]; !ok {
			return nil, false, errors.Errorf("createInstance: cannot add validation- extension %s not available", ext_debug_utils.ExtensionName)
		}
		names = append(names, ext_debug_utils.ExtensionName)
	}

	if _, ok := available[khr_portability_enumeration.ExtensionName]; ok {
		names = append(names, khr_portability_enumeration.ExtensionName)
		portability = true
	}

	return names, portability, nil
}

func instanceLayers[T any](available map[string]T, requested []string) ([]string, error) {
	var layers []string
	for _, layer := range requested {
		if _, ok := available[layer]; !ok {
			return nil, errors.Errorf("createInstance: cannot add validation- layer %s not available- install LunarG Vulkan SDK", layer)
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// deviceExtensions enables portability subset when the device advertises
// it, which is mandatory on portability implementations such as MoltenVK.
func deviceExtensions[T any](available map[string]T) []string {
	var names []string
	if _, ok := available[khr_portability_subset.ExtensionName]; ok {
		names = append(names, khr_portability_subset.ExtensionName)
	}
	return names
}
