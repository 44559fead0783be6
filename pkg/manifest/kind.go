package manifest

// Kind names the type of a single manifest input.
type Kind string

const (
	KindInteger     Kind = "integer"
	KindDecimal     Kind = "decimal"
	KindString      Kind = "string"
	KindBool        Kind = "bool"
	KindCSV         Kind = "csv"
	KindCSVTable    Kind = "csv-table"
	KindChoice      Kind = "choice"
	KindMultiSelect Kind = "multi-select"

	KindAliquot         Kind = "aliquot"
	KindAliquotList     Kind = "aliquot+"
	KindAliquotListList Kind = "aliquot++"
	KindContainer       Kind = "container"
	KindContainerList   Kind = "container+"
	KindCompound        Kind = "compound"
	KindCompoundList    Kind = "compound+"

	KindGroup       Kind = "group"
	KindGroupList   Kind = "group+"
	KindGroupChoice Kind = "group-choice"
	KindThermocycle Kind = "thermocycle"

	KindTime                Kind = "time"
	KindVolume              Kind = "volume"
	KindMass                Kind = "mass"
	KindLength              Kind = "length"
	KindTemperature         Kind = "temperature"
	KindMassConcentration   Kind = "mass_concentration"
	KindAmountConcentration Kind = "amount_concentration"
	KindFrequency           Kind = "frequency"
	KindAcceleration        Kind = "acceleration"
)

// Class groups kinds by how the interpreter treats them. Every operation
// dispatches on the class rather than on kind strings.
type Class uint8

const (
	// ClassUnknown covers kind names the interpreter does not recognise. They
	// get no special handling: no natural default, no extraction, and only
	// the generic required check.
	ClassUnknown Class = iota
	ClassScalar
	ClassInteger
	ClassQuantity
	ClassCSVTable
	ClassEntity
	ClassEntityList
	ClassAliquotListList
	ClassGroup
	ClassGroupList
	ClassGroupChoice
	ClassThermocycle
)

var kindClasses = map[Kind]Class{
	KindInteger:     ClassInteger,
	KindDecimal:     ClassScalar,
	KindString:      ClassScalar,
	KindBool:        ClassScalar,
	KindCSV:         ClassScalar,
	KindCSVTable:    ClassCSVTable,
	KindChoice:      ClassScalar,
	KindMultiSelect: ClassScalar,

	KindAliquot:         ClassEntity,
	KindContainer:       ClassEntity,
	KindCompound:        ClassEntity,
	KindAliquotList:     ClassEntityList,
	KindContainerList:   ClassEntityList,
	KindCompoundList:    ClassEntityList,
	KindAliquotListList: ClassAliquotListList,

	KindGroup:       ClassGroup,
	KindGroupList:   ClassGroupList,
	KindGroupChoice: ClassGroupChoice,
	KindThermocycle: ClassThermocycle,

	KindTime:                ClassQuantity,
	KindVolume:              ClassQuantity,
	KindMass:                ClassQuantity,
	KindLength:              ClassQuantity,
	KindTemperature:         ClassQuantity,
	KindMassConcentration:   ClassQuantity,
	KindAmountConcentration: ClassQuantity,
	KindFrequency:           ClassQuantity,
	KindAcceleration:        ClassQuantity,
}

// Class reports the dispatch class for k.
func (k Kind) Class() Class {
	return kindClasses[k]
}

// Known reports whether k is one of the declared kinds.
func (k Kind) Known() bool {
	_, ok := kindClasses[k]
	return ok
}

// HasInputs reports whether descriptions of this kind carry a nested schema.
func (k Kind) HasInputs() bool {
	return k == KindGroup || k == KindGroupList
}

// HasOptions reports whether descriptions of this kind carry an option list.
func (k Kind) HasOptions() bool {
	return k == KindChoice || k == KindGroupChoice || k == KindMultiSelect
}

// Singular returns the element kind for list entity kinds (container+ ->
// container, aliquot++ -> aliquot+). Other kinds return themselves.
func (k Kind) Singular() Kind {
	switch k {
	case KindAliquotList:
		return KindAliquot
	case KindAliquotListList:
		return KindAliquotList
	case KindContainerList:
		return KindContainer
	case KindCompoundList:
		return KindCompound
	default:
		return k
	}
}

// QuantityKinds lists the physical-quantity kinds in declaration order.
func QuantityKinds() []Kind {
	return []Kind{
		KindTime, KindVolume, KindMass, KindLength, KindTemperature,
		KindMassConcentration, KindAmountConcentration, KindFrequency, KindAcceleration,
	}
}
