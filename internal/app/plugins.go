package app

import (
	"github.com/vk/lazymod/internal/registry"
	"github.com/vk/lazymod/providers/env"
	"github.com/vk/lazymod/providers/httpfetch"
	"github.com/vk/lazymod/providers/socketio"
	"github.com/vk/lazymod/providers/static"
)

// corePlugins is the definitive list of provider plugins that are compiled
// into the lazymod binary.
var corePlugins = []registry.Plugin{
	&static.Plugin{},
	&env.Plugin{},
	&httpfetch.Plugin{},
	&socketio.Plugin{},
}
