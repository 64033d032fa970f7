package vkhost

import (
	log "github.com/sirupsen/logrus"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
)

func debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    logDebug,
	}
}

func logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	level := log.WarnLevel
	if (severity & ext_debug_utils.SeverityError) != 0 {
		level = log.ErrorLevel
	}
	log.StandardLogger().Logf(level, "[%s %s] - %s", severity, msgType, data.Message)
	return false
}
