package component

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"github.com/tempest-engine/tempest/types"
)

// Metadata wraps a registered component class with the reflection
// facilities serialization layers need: a JSON schema, a codec, and
// type-checked boxing. Storage code only ever sees the ComponentType;
// Metadata is the type-erased face of the same class.
type Metadata struct {
	ctype  types.ComponentType
	rtype  reflect.Type
	schema []byte
}

func newMetadata(id types.ComponentID, rt reflect.Type) (*Metadata, error) {
	if rt == nil || rt.Kind() == reflect.Ptr {
		return nil, eris.New("components must be non-pointer struct or value types")
	}
	if rt.Name() == "" {
		return nil, eris.Errorf("components must be named types, got %v", rt)
	}
	schema, err := serializeSchema(rt)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		ctype:  types.NewComponentType(id, rt.Name(), uint32(rt.Size()), uint32(rt.Align())),
		rtype:  rt,
		schema: schema,
	}, nil
}

// Type returns the storage-facing identity of the class.
func (m *Metadata) Type() types.ComponentType { return m.ctype }

// ID returns the dense registry id.
func (m *Metadata) ID() types.ComponentID { return m.ctype.ID() }

// Name returns the registered class name.
func (m *Metadata) Name() string { return m.ctype.Name() }

// ReflectType returns the Go type backing the class.
func (m *Metadata) ReflectType() reflect.Type { return m.rtype }

// Schema returns the JSON schema reflected at registration.
func (m *Metadata) Schema() []byte { return m.schema }

// New returns the marshaled bytes of the class's zero value.
func (m *Metadata) New() ([]byte, error) {
	return m.Encode(reflect.Zero(m.rtype).Interface())
}

// Encode marshals a boxed component value to JSON.
func (m *Metadata) Encode(v any) ([]byte, error) {
	if reflect.TypeOf(v) != m.rtype {
		return nil, eris.Errorf("cannot encode %T as component %q", v, m.Name())
	}
	bz, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode component")
	}
	return bz, nil
}

// Decode unmarshals JSON into a boxed value of the class.
func (m *Metadata) Decode(bz []byte) (any, error) {
	v := reflect.New(m.rtype)
	if err := json.Unmarshal(bz, v.Interface()); err != nil {
		return nil, eris.Wrap(err, "failed to decode component")
	}
	return v.Elem().Interface(), nil
}

// checkSchema reports whether other describes the same shape as this
// class. Two registrations under one name are compatible only when their
// schemas diff to nothing.
func (m *Metadata) checkSchema(other []byte) error {
	patch, err := jsondiff.CompareJSON(m.schema, other)
	if err != nil {
		return eris.Wrap(err, "failed to compare component schemas")
	}
	if patch.String() != "" {
		return eris.Wrapf(ErrSchemaMismatch, "%s", patch.String())
	}
	return nil
}

func serializeSchema(rt reflect.Type) ([]byte, error) {
	s := jsonschema.Reflect(reflect.Zero(rt).Interface())
	bz, err := s.MarshalJSON()
	if err != nil {
		return nil, eris.Wrap(err, "component must be json serializable")
	}
	return bz, nil
}
