package llm

import "github.com/invopop/jsonschema"

// GenerateSchema reflects a strict JSON schema for T, suitable for
// structured-output requests.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
