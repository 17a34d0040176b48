package crs

import (
	"fmt"
	"sort"
)

// Registry resolves CRS codes. The first CRS it is built with is the default.
// A Registry is read-only after construction.
type Registry struct {
	byCode map[string]*CRS
	def    *CRS
}

// NewRegistry indexes systems by code. A later CRS with the same code
// replaces an earlier one.
func NewRegistry(systems ...*CRS) *Registry {
	r := &Registry{byCode: make(map[string]*CRS, len(systems))}
	defCode := ""
	for _, c := range systems {
		if c == nil {
			continue
		}
		if defCode == "" {
			defCode = c.Code()
		}
		r.byCode[c.Code()] = c
	}
	r.def = r.byCode[defCode]

	return r
}

// Builtin returns a registry with every predefined CRS, EPSG3857 first.
func Builtin() *Registry {
	return NewRegistry(EPSG3857, EPSG900913, EPSG3395, EPSG4326, Simple)
}

// Default returns the first registered CRS, or nil for an empty registry.
func (r *Registry) Default() *CRS {
	return r.def
}

// WithDefault returns a copy of r whose default is the CRS registered under
// code.
func (r *Registry) WithDefault(code string) (*Registry, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*CRS, len(r.byCode))
	for k, v := range r.byCode {
		byCode[k] = v
	}

	return &Registry{byCode: byCode, def: c}, nil
}

// Lookup returns the CRS registered under code.
func (r *Registry) Lookup(code string) (*CRS, error) {
	c, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCRS, code)
	}

	return c, nil
}

// Register returns a copy of r with extra systems added.
func (r *Registry) Register(systems ...*CRS) *Registry {
	all := make([]*CRS, 0, len(r.byCode)+len(systems))
	if r.def != nil {
		all = append(all, r.def)
	}
	for _, code := range r.Codes() {
		if r.def != nil && code == r.def.Code() {
			continue
		}
		all = append(all, r.byCode[code])
	}

	return NewRegistry(append(all, systems...)...)
}

// Codes returns the registered codes in sorted order.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes
}

// RegisterDefinitions resolves defs and returns a copy of r that also holds
// them. Nothing is registered if any definition is invalid.
func (r *Registry) RegisterDefinitions(defs ...Definition) (*Registry, error) {
	systems := make([]*CRS, 0, len(defs))
	for _, def := range defs {
		c, err := FromDefinition(def)
		if err != nil {
			return nil, err
		}
		systems = append(systems, c)
	}

	return r.Register(systems...), nil
}
