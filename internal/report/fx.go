package report

import (
	"github.com/laminkinte/business-development-dashboard-sub000/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(service.New),
)
