package bootstrap

import "github.com/cockroachdb/errors"

var (
	ErrAPIUnavailable        = errors.New("graphics API unavailable")
	ErrNoPhysicalDevice      = errors.New("no device available")
	ErrNoGraphicsQueueFamily = errors.New("couldn't find a graphical queue family")
	ErrQueueCountExceeded    = errors.New("queue family does not offer enough queues")
	ErrInvalidOptions        = errors.New("invalid bootstrap options")
)
