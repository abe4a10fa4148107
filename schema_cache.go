package options

import (
	"fmt"
	"reflect"
	"sync"
)

// structSchema is the tag layout of one struct type: the option fields in
// declaration order with their decoded tags. It depends only on the type, so
// it is computed once and shared by every registry built from that type.
type structSchema struct {
	fields []schemaField
}

type schemaField struct {
	Index int
	Name  string
	Tags  FieldTags
}

// schemaCache holds struct schemas keyed by struct type.
//
// The cache is thread-safe. Schemas that fail to decode are not cached, so
// the same error is reported on every attempt.
type schemaCache struct {
	schemas map[reflect.Type]*structSchema
	mutex   sync.RWMutex
}

var _schemas = newSchemaCache()

func newSchemaCache() *schemaCache {
	return &schemaCache{
		schemas: make(map[reflect.Type]*structSchema),
	}
}

// get retrieves the schema of typ, decoding and caching it on first use.
func (sc *schemaCache) get(typ reflect.Type) (*structSchema, error) {
	sc.mutex.RLock()
	schema, exists := sc.schemas[typ]
	sc.mutex.RUnlock()

	if exists {
		return schema, nil
	}

	schema, err := newStructSchema(typ)
	if err != nil {
		return nil, err
	}

	sc.mutex.Lock()
	if cached, ok := sc.schemas[typ]; ok {
		schema = cached
	} else {
		sc.schemas[typ] = schema
	}
	sc.mutex.Unlock()

	return schema, nil
}

func (sc *schemaCache) len() int {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return len(sc.schemas)
}

// newStructSchema walks the fields of typ in declaration order. Fields
// without an `option` tag are skipped; embedded structs are not descended
// into.
func newStructSchema(typ reflect.Type) (*structSchema, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidSource, typ)
	}

	schema := &structSchema{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tags, ok, err := GetFieldTags(field)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		if !ok {
			continue
		}
		if !field.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnexportedField, typ, field.Name)
		}

		schema.fields = append(schema.fields, schemaField{
			Index: i,
			Name:  field.Name,
			Tags:  tags,
		})
	}

	return schema, nil
}

// structDeclarations binds the schema of the struct behind ptr to its
// fields.
func structDeclarations(ptr reflect.Value) ([]declaration, error) {
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidSource, ptr.Type())
	}

	value := ptr.Elem()
	typ := value.Type()

	schema, err := _schemas.get(typ)
	if err != nil {
		return nil, err
	}

	decls := make([]declaration, 0, len(schema.fields))
	for _, field := range schema.fields {
		decls = append(decls, declaration{
			Name:   field.Name,
			Field:  typ.String() + "." + field.Name,
			Target: value.Field(field.Index),
			Tags:   field.Tags,
		})
	}
	return decls, nil
}
