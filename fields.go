package mdfront

// Metadata keys projected by ExtractKnownConfigFields.
const (
	providerKey   = "provider"
	modelKey      = "model"
	parametersKey = "parameters"
)

// Parameter type kinds recognized by ExtractParameterDefinitions.
const (
	ParameterString  = "string"
	ParameterNumber  = "number"
	ParameterBoolean = "boolean"
	ParameterArray   = "array"
	ParameterObject  = "object"
)

// KnownConfigFields is the typed projection of the well-known
// configuration keys out of a flat metadata mapping.
type KnownConfigFields struct {
	Provider   string   // empty when absent or not a string
	Model      string   // empty when absent or not a string
	Parameters Metadata // nil when absent or not a mapping
}

// ParameterDefinition describes one entry of the metadata "parameters"
// sub-mapping. Derived on demand, never persisted.
type ParameterDefinition struct {
	Type        string
	Description string
	Required    bool
	Default     any
}

// ExtractKnownConfigFields projects provider, model, and the sanitized
// parameters sub-mapping out of metadata. Pure and never fails; values of
// the wrong shape read as absent.
func ExtractKnownConfigFields(m Metadata) KnownConfigFields {
	var out KnownConfigFields
	if m == nil {
		return out
	}
	out.Provider, _ = m[providerKey].(string)
	out.Model, _ = m[modelKey].(string)
	if params := asStringMap(m[parametersKey]); params != nil {
		out.Parameters = Sanitize(params)
	}
	return out
}

// ExtractParameterDefinitions projects metadata["parameters"] into typed
// definitions. An entry is included only when its value is a mapping whose
// "type" is one of the five recognized kinds; everything else (wrong
// shape, unrecognized type) is silently omitted so bad entries never block
// use of the good ones.
func ExtractParameterDefinitions(m Metadata) map[string]ParameterDefinition {
	defs := map[string]ParameterDefinition{}
	params := asStringMap(m[parametersKey])
	if params == nil {
		return defs
	}
	for name, raw := range params {
		entry := asStringMap(raw)
		if entry == nil {
			continue
		}
		kind, ok := entry["type"].(string)
		if !ok || !isRecognizedKind(kind) {
			continue
		}
		def := ParameterDefinition{Type: kind}
		def.Description, _ = entry["description"].(string)
		def.Required, _ = entry["required"].(bool)
		if raw, present := entry["default"]; present {
			def.Default = sanitizeValue(raw)
		}
		defs[name] = def
	}
	return defs
}

func isRecognizedKind(kind string) bool {
	switch kind {
	case ParameterString, ParameterNumber, ParameterBoolean, ParameterArray, ParameterObject:
		return true
	}
	return false
}

// asStringMap normalizes the mapping shapes the codec or callers produce.
// Returns nil when v is not a mapping.
func asStringMap(v any) Metadata {
	switch val := v.(type) {
	case Metadata:
		return val
	case map[string]any:
		return Metadata(val)
	case map[any]any:
		out := make(Metadata, len(val))
		for k, inner := range val {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = inner
		}
		return out
	}
	return nil
}
