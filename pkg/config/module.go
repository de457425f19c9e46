package config

import (
	"github.com/shuldan/underc0de-admin/pkg/contracts"
	"github.com/shuldan/underc0de-admin/pkg/registry"
)

type module struct {
	loader Loader
}

// NewModule loads, in increasing priority: YAML, JSON, .env files and the
// process environment. envPrefix selects variables such as UNDERC0DE_API__BASE_URL.
func NewModule(envPrefix string, configPaths ...string) contracts.AppModule {
	yamlPaths, jsonPaths, envPaths := configPaths, configPaths, []string{".env"}
	if len(configPaths) == 0 {
		yamlPaths = append(DefaultPaths("yaml"), DefaultPaths("yml")...)
		jsonPaths = DefaultPaths("json")
	}

	aliases := map[string]string{"VITE_API_BASE_URL": "api.base_url"}

	return NewModuleWithLoader(NewTemplatedLoader(NewChainLoader(
		NewYamlLoader(yamlPaths...),
		NewJSONLoader(jsonPaths...),
		NewDotenvLoader(envPrefix, aliases, envPaths...),
		NewEnvLoader(envPrefix, aliases),
	)))
}

func NewModuleWithLoader(loader Loader) contracts.AppModule {
	return &module{loader: loader}
}

func (m *module) Name() string {
	return contracts.ConfigModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	err := container.Factory(contracts.ConfigModuleName, func(contracts.DIResolver) (any, error) {
		values, err := m.loader.Load()
		if err != nil {
			return nil, err
		}
		return NewMapConfig(values), nil
	})
	if err != nil {
		return err
	}

	return container.Factory(contracts.SettingsModuleName, func(c contracts.DIResolver) (any, error) {
		cfg, err := registry.Resolve[contracts.Config](c, contracts.ConfigModuleName)
		if err != nil {
			return nil, err
		}
		return LoadSettings(cfg)
	})
}

func (m *module) Start(contracts.AppContext) error {
	return nil
}

func (m *module) Stop(contracts.AppContext) error {
	return nil
}
