package engine

// View is one of the top-level screens. Two of them display a pair of
// kinds; the rest map 1:1.
type View int

const (
	ViewDeployments View = iota
	ViewPods
	ViewServices
	ViewConfig
	ViewJobs
	ViewCronJobs
)

// AllViews lists the views in tab order.
var AllViews = []View{
	ViewDeployments,
	ViewPods,
	ViewServices,
	ViewConfig,
	ViewJobs,
	ViewCronJobs,
}

var viewNames = [...]string{
	"Deployments",
	"Pods",
	"Services",
	"Config",
	"Jobs",
	"CronJobs",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "Unknown"
	}
	return viewNames[v]
}

// Kinds returns the kinds the view displays.
func (v View) Kinds() []Kind {
	switch v {
	case ViewDeployments:
		return []Kind{KindDeployments}
	case ViewPods:
		return []Kind{KindPods}
	case ViewServices:
		return []Kind{KindServices, KindIngresses}
	case ViewConfig:
		return []Kind{KindConfigMaps, KindSecrets}
	case ViewJobs:
		return []Kind{KindJobs}
	case ViewCronJobs:
		return []Kind{KindCronJobs}
	default:
		return nil
	}
}

// Next returns the view after v in tab order, wrapping around.
func (v View) Next() View {
	return View((int(v) + 1) % len(AllViews))
}
