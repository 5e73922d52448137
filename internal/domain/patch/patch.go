package patch

import "encoding/json"

// Field representa un campo de un PATCH parcial:
// - Present=false: el campo no vino en el body, no se toca.
// - Present=true, Value=nil: vino como null explícito (limpiar campo anulable).
// - Present=true, Value!=nil: nuevo valor.
//
// Antes cada módulo tenía su propio wrapper ad-hoc (estilo patchBirthDate);
// al repetirse en cats y photos conviene este helper común.
type Field[T any] struct {
	Present bool
	Value   *T
}

// Set construye un campo presente con valor (útil en tests).
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: &v}
}

// Null construye un campo presente con null explícito.
func Null[T any]() Field[T] {
	return Field[T]{Present: true}
}

// FromRaw decodifica un campo desde el map crudo del body.
// Distingue "ausente" de "null" mirando la presencia de la key.
func FromRaw[T any](raw map[string]json.RawMessage, key string) (Field[T], error) {
	v, ok := raw[key]
	if !ok {
		return Field[T]{}, nil
	}
	if string(v) == "null" {
		return Field[T]{Present: true}, nil
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return Field[T]{}, err
	}
	return Field[T]{Present: true, Value: &out}, nil
}
