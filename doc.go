package propschema

// Package propschema provides:
//
// - A typed property schema (Descriptor/Schema) with string-encoded defaults and display metadata
// - A generic ordered document tree (Node) with string/number/bool leaves
// - The round trip between them (InitializeContent/GetProperties/UpdateProperty)
// - A stable diagnostic model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep the schema/document model and the round trip in the root package.
// - Place document persistence under codec/, schema files under schemafile/, and the CLI under cmd/propschema.
// - Absence is a normal state: missing children fall back to defaults, never to errors.
//
// Typical usage:
//
//  schema, err := schemafile.Load("behavior.yaml")
//  doc := propschema.NewNode()
//  propschema.InitializeContent(schema, doc)
//  propschema.UpdateProperty(schema, doc, "speed", "42")
//  props := propschema.GetProperties(schema, doc)
//
//  data, err := codec.JSON{}.Encode(doc)
//
