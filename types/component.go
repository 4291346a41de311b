package types

// ComponentID is the dense integer identity assigned to a component
// class on first registration. Ids start at 0 and are process-wide
// stable for the lifetime of the registry.
type ComponentID int32

// ComponentType is the registry-issued identity for a component class.
// It carries the element size and alignment the storage layer needs to
// lay out component columns.
type ComponentType struct {
	id        ComponentID
	size      uint32
	align     uint32
	zeroSized bool
	name      string
}

// NewComponentType builds a ComponentType. It is intended to be called
// by the component registry, not by user code.
func NewComponentType(id ComponentID, name string, size, align uint32) ComponentType {
	return ComponentType{
		id:        id,
		size:      size,
		align:     align,
		zeroSized: size == 0,
		name:      name,
	}
}

// ID returns the dense registry id of the component class.
func (c ComponentType) ID() ComponentID { return c.id }

// Name returns the component class name.
func (c ComponentType) Name() string { return c.name }

// Size returns the element size in bytes.
func (c ComponentType) Size() uint32 { return c.size }

// Align returns the element alignment in bytes.
func (c ComponentType) Align() uint32 { return c.align }

// IsZeroSized reports whether values of this class occupy no storage.
// Zero-sized components participate in signatures and lookups but skip
// column allocation.
func (c ComponentType) IsZeroSized() bool { return c.zeroSized }
