package schema

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/amqp-codec/errors"
)

type methodKey struct {
	class  uint8
	method uint8
}

// Registry indexes a set of structures by qualified name, by method
// identifiers and by structure type code. It is immutable once built.
type Registry struct {
	byName   map[string]*Structure
	byMethod map[methodKey]*Structure
	byType   map[uint16]*Structure
	all      []*Structure
}

// NewRegistry indexes structures. Every collision is reported; the returned
// error combines them.
func NewRegistry(structures ...*Structure) (*Registry, error) {
	r := &Registry{
		byName:   make(map[string]*Structure, len(structures)),
		byMethod: make(map[methodKey]*Structure),
		byType:   make(map[uint16]*Structure),
		all:      make([]*Structure, 0, len(structures)),
	}

	var err error
	for _, s := range structures {
		if s == nil {
			continue
		}
		name := s.QualifiedName()
		if prev, ok := r.byName[name]; ok && prev != s {
			err = multierr.Append(err, errors.Schema(errors.KindDuplicateStructure, []string{name},
				"name registered twice"))
			continue
		} else if ok {
			continue
		}

		if s.IsMethod() {
			key := methodKey{class: s.ClassID(), method: s.MethodID()}
			if prev, ok := r.byMethod[key]; ok {
				err = multierr.Append(err, errors.Schema(errors.KindDuplicateStructure, []string{name},
					"method %d.%d already used by %s", key.class, key.method, prev.QualifiedName()))
				continue
			}
			r.byMethod[key] = s
		} else if s.HasTypeCode() {
			code := s.TypeCode()
			if prev, ok := r.byType[code]; ok {
				err = multierr.Append(err, errors.Schema(errors.KindDuplicateStructure, []string{name},
					"type code %d already used by %s", code, prev.QualifiedName()))
				continue
			}
			r.byType[code] = s
		}

		r.byName[name] = s
		r.all = append(r.all, s)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(r.all, func(i, j int) bool {
		return r.all[i].QualifiedName() < r.all[j].QualifiedName()
	})

	Logger().Debug("schema registry built",
		zap.Int("structures", len(r.all)),
		zap.Int("methods", len(r.byMethod)),
		zap.Int("typed", len(r.byType)))

	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(structures ...*Structure) *Registry {
	r, err := NewRegistry(structures...)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return r
}

// ByName returns the structure with the given qualified name.
func (r *Registry) ByName(name string) (*Structure, error) {
	if s, ok := r.byName[name]; ok {
		return s, nil
	}
	return nil, errors.NotFound(errors.PhaseSchema, "structure", name)
}

// Method returns the method body registered for classID and methodID.
func (r *Registry) Method(classID, methodID uint8) (*Structure, error) {
	if s, ok := r.byMethod[methodKey{class: classID, method: methodID}]; ok {
		return s, nil
	}
	return nil, errors.NotFound(errors.PhaseDecode, "method", fmt.Sprintf("%d.%d", classID, methodID))
}

// Struct returns the structure with the given (qualified) type code.
func (r *Registry) Struct(code uint16) (*Structure, error) {
	if s, ok := r.byType[code]; ok {
		return s, nil
	}
	return nil, errors.NotFound(errors.PhaseDecode, "structure type", fmt.Sprint(code))
}

// All returns every registered structure ordered by qualified name.
func (r *Registry) All() []*Structure {
	return append([]*Structure(nil), r.all...)
}

// Len returns the number of registered structures.
func (r *Registry) Len() int { return len(r.all) }
