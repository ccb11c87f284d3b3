package schema

// MaxBitRun is the number of bit fields that share one octet.
const MaxBitRun = 8

// UnitKind distinguishes the two unit shapes.
type UnitKind uint8

const (
	UnitSingle UnitKind = iota
	UnitBitRun
)

// Unit is one encode/decode/size step of an unpacked structure: a single
// non-bit field, or 1 to 8 consecutive bit fields sharing an octet.
type Unit struct {
	Fields []Field
	Kind   UnitKind
}

// Field returns the field of a single unit.
func (u Unit) Field() Field {
	return u.Fields[0]
}

// Sequence partitions fields, in order, into units.
func Sequence(fields []Field) []Unit {
	units := make([]Unit, 0, len(fields))
	var run []Field

	flush := func() {
		if len(run) > 0 {
			units = append(units, Unit{Kind: UnitBitRun, Fields: run})
			run = nil
		}
	}

	for _, f := range fields {
		if f.IsBit() {
			if len(run) == MaxBitRun {
				flush()
			}
			run = append(run, f)
			continue
		}
		flush()
		units = append(units, Unit{Kind: UnitSingle, Fields: []Field{f}})
	}
	flush()

	return units
}
