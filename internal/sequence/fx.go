package sequence

import (
	"github.com/billforge/billforge/internal/sequence/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sequence.allocator",
	fx.Provide(service.NewAllocator),
)
