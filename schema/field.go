package schema

// FieldDef declares one field of a structure under construction.
//
// Domain is a domain type tag such as "octet" or "shortstr". Nested structure
// fields set Struct and leave Domain empty (or "struct").
type FieldDef struct {
	Struct *Structure
	Name   string
	Domain string
}

// Field is a classified field of a built Structure.
type Field struct {
	Struct *Structure
	Name   string
	Class  Class
	Index  int
	Kind   Kind
}

// IsBit reports whether the field is a boolean bit.
func (f Field) IsBit() bool {
	return f.Class.Category == CategoryBit
}

// Domain returns the domain name, using the nested structure name for struct fields.
func (f Field) Domain() string {
	if f.Kind == KindStruct && f.Struct != nil {
		return f.Struct.QualifiedName()
	}
	return f.Kind.String()
}
