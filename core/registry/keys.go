package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries (cmd, cron, api modules, root routes)
	KeyRegistryCmd    = "registry:cmd"
	KeyRegistryCron   = "registry:cron"
	KeyRegistryAPI    = "registry:api"
	KeyRegistryRoutes = "registry:routes"
)
