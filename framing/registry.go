package framing

import (
	"github.com/wippyai/amqp-codec/errors"
	"github.com/wippyai/amqp-codec/schema"
)

var registry = schema.MustRegistry(append(append([]*schema.Structure{}, structs...), methods()...)...)

// Registry returns the registry of built-in structures and methods.
func Registry() *schema.Registry { return registry }

// Lookup returns the built-in structure or method with the given qualified name.
func Lookup(name string) (*schema.Structure, error) {
	return registry.ByName(name)
}

// Method returns the built-in method body for classID and methodID.
func Method(classID, methodID uint8) (*schema.Structure, error) {
	return registry.Method(classID, methodID)
}

// Struct returns the built-in structure with the given type code.
func Struct(code uint16) (*schema.Structure, error) {
	return registry.Struct(code)
}

// ResultOf returns the result structure a method produces.
func ResultOf(method *schema.Structure) (*schema.Structure, error) {
	if !method.ResultExpected() {
		return nil, errors.NotFound(errors.PhaseSchema, "result of", method.QualifiedName())
	}
	return registry.ByName(method.ResultType())
}
