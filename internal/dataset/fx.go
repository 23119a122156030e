package dataset

import (
	"github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/repository"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dataset.loader",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
