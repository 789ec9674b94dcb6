package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Resource is one externally exposed read view, bound 1:1 to a Firestore
// collection. The set is fixed at startup and never mutated.
type Resource struct {
	Path        string `yaml:"path"`
	Collection  string `yaml:"collection"`
	Description string `yaml:"description"`
}

type Registry struct {
	resources []Resource
	byPath    map[string]Resource
}

type registryFile struct {
	Resources []Resource `yaml:"resources"`
}

// Init builds the registry from a YAML file, or from the built-in table when
// path is empty.
func Init(path string) (*Registry, error) {
	resources := Defaults()
	if path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load error: %w", err)
		}
		resources = loaded
	}
	reg, err := build(resources)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return reg, nil
}

func loadFile(path string) ([]Resource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f registryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Resources) == 0 {
		return nil, fmt.Errorf("%s: no resources defined", path)
	}
	return f.Resources, nil
}

func build(resources []Resource) (*Registry, error) {
	byPath := make(map[string]Resource, len(resources))
	for _, res := range resources {
		if res.Path == "" {
			return nil, fmt.Errorf("resource with empty path (collection %q)", res.Collection)
		}
		if res.Collection == "" {
			return nil, fmt.Errorf("resource %q has no collection", res.Path)
		}
		if _, dup := byPath[res.Path]; dup {
			return nil, fmt.Errorf("duplicate resource path %q", res.Path)
		}
		byPath[res.Path] = res
	}
	return &Registry{resources: resources, byPath: byPath}, nil
}

func (r *Registry) Resources() []Resource {
	return r.resources
}

func (r *Registry) Lookup(path string) (Resource, bool) {
	res, ok := r.byPath[path]
	return res, ok
}

// Endpoints returns every routable path including the static ones, sorted,
// for the capability listing and the 404 payload.
func (r *Registry) Endpoints() []string {
	out := []string{"/", "/health"}
	for _, res := range r.resources {
		out = append(out, "/"+res.Path)
	}
	sort.Strings(out[2:])
	return out
}

// Defaults is the historical endpoint table of the BI gateway.
func Defaults() []Resource {
	return []Resource{
		{Path: "alerts-checkin", Collection: "AlertsCheckIn", Description: "Alerts Check-In"},
		{Path: "checklist", Collection: "Checklist", Description: "Checklist"},
		{Path: "branch", Collection: "Branch", Description: "Filiais"},
		{Path: "garage", Collection: "Garage", Description: "Garagens"},
		{Path: "costcenter", Collection: "CostCenter", Description: "Centros de Custo"},
		{Path: "sensors", Collection: "Sensors", Description: "Sensores"},
		{Path: "organization", Collection: "Organization", Description: "Organizações"},
		{Path: "assettype", Collection: "AssetType", Description: "Tipos de Ativos"},
		{Path: "vehicles", Collection: "Vehicles", Description: "Veículos"},
		{Path: "tires", Collection: "Tires", Description: "Pneus"},
		{Path: "suppliers", Collection: "Suppliers", Description: "Fornecedores"},
		{Path: "userregistration", Collection: "UserRegistration", Description: "Usuários"},
		{Path: "trips", Collection: "Trips", Description: "Viagens"},
		{Path: "fuelregistration", Collection: "FuelRegistration", Description: "Combustível"},
		{Path: "contractmanagement", Collection: "ContractManagement", Description: "Contratos"},
		{Path: "alelo-supply-history", Collection: "AleloSupplyHistory", Description: "Histórico Alelo"},
	}
}
